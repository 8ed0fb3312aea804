package storage

import "errors"

var (
	// ErrTemplateNotFound шаблон с таким именем файла отсутствует.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrAdminTemplateProtected шаблоны администратора удалять нельзя.
	ErrAdminTemplateProtected = errors.New("admin templates cannot be deleted")
	// ErrInvalidCategory неизвестная категория шаблона.
	ErrInvalidCategory = errors.New("invalid template category")
)
