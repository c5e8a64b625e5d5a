package model

import "io"

// Upload : файл из multipart формы
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}
