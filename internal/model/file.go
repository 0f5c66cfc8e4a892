package model

import "time"

// File : неизменяемая запись о загруженном файле
type File struct {
	ID          int64     `db:"id" json:"-"`
	PublicID    string    `db:"public_id" json:"file_id"`
	OwnerUUID   string    `db:"owner_uuid" json:"owner_uuid"`
	Name        string    `db:"name" json:"name"`
	Extension   string    `db:"extension" json:"extension"`
	StoragePath string    `db:"storage_path" json:"storage_path"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// DisplayFilename : имя, под которым файл отдаётся при скачивании
func (f File) DisplayFilename() string {
	if f.Extension == "" {
		return f.Name
	}
	return f.Name + "." + f.Extension
}

// FileRecord : файл вместе с актуальным списком доступа
type FileRecord struct {
	File     File
	Accesses []AccessEntry
}

type FileContent struct {
	Filename string
	Data     []byte
}

// UploadInput : данные одного загружаемого файла
type UploadInput struct {
	OriginalName string
	Extension    string
	Data         []byte
}
