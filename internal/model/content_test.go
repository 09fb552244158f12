// internal/model/content_test.go
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestParseExperienceContent_TotalDays(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantTotal int
	}{
		{
			name:      "array no topo com itens: total é o tamanho da sequência",
			raw:       `[{"day":1,"title":"A"},{"day":2,"title":"B"},{"day":3,"title":"C"}]`,
			wantTotal: 3,
		},
		{
			name:      "daily_content com itens: total é o tamanho de daily_content",
			raw:       `{"daily_content":[{"day":1},{"day":2}]}`,
			wantTotal: 2,
		},
		{
			name: "daily_content explicitamente vazio: total é zero",
			// o autor declarou a sequência e ela está vazia; não cai no
			// fallback histórico
			raw:       `{"daily_content":[]}`,
			wantTotal: 0,
		},
		{
			name:      "objeto sem daily_content: fallback histórico de 21",
			raw:       `{"titulo":"Conteúdo antigo","descricao":"sem dias"}`,
			wantTotal: DefaultTotalDays,
		},
		{
			name:      "array vazio no topo: fallback histórico de 21",
			raw:       `[]`,
			wantTotal: DefaultTotalDays,
		},
		{
			name:      "conteúdo nulo: fallback histórico de 21",
			raw:       ``,
			wantTotal: DefaultTotalDays,
		},
		{
			name:      "JSON irreconhecível: fallback histórico de 21",
			raw:       `"apenas uma string"`,
			wantTotal: DefaultTotalDays,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := ParseExperienceContent(datatypes.JSON(tt.raw))
			assert.Equal(t, tt.wantTotal, content.TotalDays())
		})
	}
}

func TestParseExperienceContent_Apelidos(t *testing.T) {
	// conteúdo autorado em português, com os apelidos de campo usados pelo
	// gerador antigo
	raw := `[
		{
			"day": 1,
			"titulo": "Começando a jornada",
			"passagem": {"referencia": "Salmos 23:1", "texto": "O Senhor é o meu pastor..."},
			"devocional": "Hoje começamos.",
			"oracao": "Senhor, obrigado por este dia."
		},
		{
			"day": 2,
			"title": "Segundo dia",
			"scripture": {"reference": "João 3:16", "text": "Porque Deus amou o mundo..."},
			"devotional": "Seguindo em frente.",
			"prayer": "Amém."
		}
	]`

	content := ParseExperienceContent(datatypes.JSON(raw))
	assert.Equal(t, 2, content.TotalDays())

	dia1 := content.DayFor(1)
	assert.Equal(t, "Começando a jornada", dia1.Title)
	assert.Equal(t, "Salmos 23:1", dia1.Scripture.Reference)
	assert.Equal(t, "O Senhor é o meu pastor...", dia1.Scripture.Text)
	assert.Equal(t, "Hoje começamos.", dia1.Devotional)
	assert.Equal(t, "Senhor, obrigado por este dia.", dia1.Prayer)

	// os nomes canônicos funcionam igual
	dia2 := content.DayFor(2)
	assert.Equal(t, "Segundo dia", dia2.Title)
	assert.Equal(t, "João 3:16", dia2.Scripture.Reference)
	assert.Equal(t, "Seguindo em frente.", dia2.Devotional)
	assert.Equal(t, "Amém.", dia2.Prayer)
}

func TestParseExperienceContent_QuizApelidos(t *testing.T) {
	raw := `[
		{
			"day": 1,
			"quiz": [
				{"question": "Pergunta A", "options": ["x", "y"], "correctIndex": 1},
				{"question": "Pergunta B", "options": ["x", "y"], "correct_index": 0}
			]
		}
	]`

	content := ParseExperienceContent(datatypes.JSON(raw))
	dia := content.DayFor(1)
	assert.Len(t, dia.Quiz, 2)
	assert.Equal(t, 1, dia.Quiz[0].CorrectIndex)
	assert.Equal(t, 0, dia.Quiz[1].CorrectIndex)
}

func TestParseExperienceContent_NumeroDoDiaPelaPosicao(t *testing.T) {
	// entradas sem número explícito recebem o dia pela posição na sequência
	raw := `[{"titulo":"Primeiro"},{"titulo":"Segundo"},{"day":10,"titulo":"Décimo"}]`

	content := ParseExperienceContent(datatypes.JSON(raw))
	assert.Equal(t, "Primeiro", content.DayFor(1).Title)
	assert.Equal(t, "Segundo", content.DayFor(2).Title)
	assert.Equal(t, "Décimo", content.DayFor(10).Title)
}

func TestDayFor_Fallbacks(t *testing.T) {
	raw := `[{"day":1,"titulo":"Só o título"}]`
	content := ParseExperienceContent(datatypes.JSON(raw))

	// dia existente com campos faltando: cada campo recebe o texto padrão
	dia := content.DayFor(1)
	assert.Equal(t, "Só o título", dia.Title)
	assert.Equal(t, FallbackScripture, dia.Scripture.Text)
	assert.Equal(t, FallbackDevotional, dia.Devotional)
	assert.Equal(t, FallbackPrayer, dia.Prayer)

	// dia inexistente: a view nunca quebra, devolve algo exibível
	dia5 := content.DayFor(5)
	assert.Equal(t, "Dia 5", dia5.Title)
	assert.Equal(t, FallbackDevotional, dia5.Devotional)
	assert.Equal(t, FallbackScripture, dia5.Scripture.Text)
	assert.Equal(t, FallbackPrayer, dia5.Prayer)
}
