package repository

import "github.com/molisur/molino-api/internal/domain/entity"

// UsuarioRepository define el puerto de persistencia para usuarios.
type UsuarioRepository interface {
	Create(u *entity.Usuario) error
	GetByID(id int64) (*entity.Usuario, error)
	GetByEmail(email string) (*entity.Usuario, error)
	List(empresaID int64) ([]*entity.Usuario, error)
}
