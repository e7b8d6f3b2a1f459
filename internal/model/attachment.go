package model

// Attachment — единое значение «вложение»: путь на диске, имя файла,
// mimetype и опциональные байты (BLOB в БД). Встраивается в модели через
// embeddedPrefix, поэтому все четыре поля присутствуют или отсутствуют вместе.
type Attachment struct {
	Path     string `gorm:"size:256"`
	Filename string `gorm:"size:256"`
	Mimetype string `gorm:"size:128"`
	Data     []byte
}

// Present — вложение записано (есть копия на диске или BLOB).
func (a Attachment) Present() bool {
	return a.Path != "" || len(a.Data) > 0
}

// HasBlob — байты сохранены в БД.
func (a Attachment) HasBlob() bool {
	return len(a.Data) > 0
}
