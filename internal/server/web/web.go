// web - встроенные в бинарный файл html шаблоны и статические файлы формы.
package web

import (
	"embed"
	"fmt"
	"io/fs"
)

// Templates - html шаблоны страниц.
//
//go:embed templates/*.html
var Templates embed.FS

//go:embed assets/*
var assets embed.FS

// Assets - возвращает файловую систему со статическими файлами, корень - каталог assets.
func Assets() (fs.FS, error) {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		return nil, fmt.Errorf("get assets sub directory error, %w", err)
	}
	return sub, nil
}
