package clock

import (
	"fmt"
	"time"

	apierrors "github.com/serenoapp/sereno-api/pkg/errors"
)

// DayLayout é o formato canônico do dia lógico usado como chave de unicidade.
const DayLayout = "2006-01-02"

// Clock resolve o momento atual e o dia lógico no fuso fixo da aplicação.
// Todo o sistema opera em um único fuso; não existe fuso por usuário.
type Clock interface {
	// Now retorna o instante atual no fuso configurado.
	Now() time.Time

	// Today retorna a meia-noite do dia lógico atual no fuso configurado.
	Today() time.Time
}

// LocaleClock é a implementação de Clock baseada em um fuso IANA fixo.
type LocaleClock struct {
	loc *time.Location
}

// NewLocaleClock carrega o fuso informado. A ausência do banco de dados de
// fusos é um erro de configuração fatal: a aplicação não deve subir sem ele.
func NewLocaleClock(timezone string) (*LocaleClock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: fuso horário %q indisponível: %v",
			apierrors.ErrConfiguration, timezone, err)
	}
	return &LocaleClock{loc: loc}, nil
}

func (c *LocaleClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *LocaleClock) Today() time.Time {
	now := c.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)
}

// FormatDay formata um instante como dia lógico (YYYY-MM-DD).
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}
