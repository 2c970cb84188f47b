package model

import "time"

// Conversa é uma troca única entre o usuário e o bot. Imutável após criada.
type Conversa struct {
	ID              uint      `gorm:"primaryKey"`
	UsuarioID       uint      `gorm:"not null;index"`
	MensagemUsuario string    `gorm:"type:text;not null"`
	MensagemBot     string    `gorm:"type:text;not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

// TableName define o nome da tabela
func (Conversa) TableName() string {
	return "conversas"
}
