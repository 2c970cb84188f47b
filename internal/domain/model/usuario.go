package model

import "time"

// Usuario representa uma conta registrada no sistema.
// A senha é sempre armazenada como hash bcrypt, nunca em texto puro.
type Usuario struct {
	ID             uint       `gorm:"primaryKey"`
	Nome           string     `gorm:"size:100;not null"`
	Email          string     `gorm:"uniqueIndex;size:100;not null"`
	Senha          string     `gorm:"size:200;not null"`
	DataNascimento *time.Time `gorm:"type:date"`
	Hobby          *string    `gorm:"type:text"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`
}

// TableName define o nome da tabela
func (Usuario) TableName() string {
	return "usuarios"
}
