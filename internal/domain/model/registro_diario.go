package model

import "time"

// RegistroDiario é a entrada do calendário emocional: uma emoção associada
// a um dia civil explícito (YYYY-MM-DD), sem componente de hora. O índice
// único (usuario_id, data) garante no máximo um registro por usuário por dia.
type RegistroDiario struct {
	ID          uint   `gorm:"primaryKey"`
	UsuarioID   uint   `gorm:"not null;uniqueIndex:uidx_registro_diario_usuario_data"`
	Data        string `gorm:"size:10;not null;uniqueIndex:uidx_registro_diario_usuario_data"`
	Emocao      string `gorm:"size:50;not null"`
	Intensidade *int
	Observacao  *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// TableName define o nome da tabela
func (RegistroDiario) TableName() string {
	return "registro_diario"
}
