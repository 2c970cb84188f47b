package model

import "time"

// Emocao é um registro de humor carimbado com o instante da criação.
// Dia é derivado de DataCriacao no fuso fixo da aplicação e materializado
// em coluna própria para que o índice único (usuario_id, dia) garanta a
// regra "no máximo uma emoção por usuário por dia" de forma atômica no
// banco, sem janela entre consulta e inserção.
type Emocao struct {
	ID          uint      `gorm:"primaryKey"`
	UsuarioID   uint      `gorm:"not null;uniqueIndex:uidx_emocoes_usuario_dia"`
	Tipo        string    `gorm:"size:50;not null"`
	Intensidade *int
	Observacao  *string   `gorm:"type:text"`
	DataCriacao time.Time `gorm:"not null"`
	Dia         string    `gorm:"size:10;not null;uniqueIndex:uidx_emocoes_usuario_dia"`
}

// TableName define o nome da tabela
func (Emocao) TableName() string {
	return "emocoes"
}
