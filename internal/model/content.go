// internal/model/content.go
package model

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// DefaultTotalDays é o total histórico de dias usado quando o conteúdo da
// experiência não traz nenhuma sequência indexada por dia. Conteúdos antigos
// (anteriores ao gerador) dependem desse valor; a matemática de percentual
// mais abaixo exige denominador não nulo.
const DefaultTotalDays = 21

// Textos de fallback exibidos quando um dia existe mas está com campos
// faltando. A view nunca falha por causa de um campo ausente.
const (
	FallbackDevotional = "Reflexão não encontrada."
	FallbackScripture  = "Passagem não encontrada."
	FallbackPrayer     = "Oração não encontrada."
)

// Scripture é a passagem bíblica do dia, já no formato canônico.
type Scripture struct {
	Reference string `json:"reference"`
	Text      string `json:"text"`
}

type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// DayContent é a forma canônica de um dia da experiência. Todo o motor de
// progresso trabalha apenas com esse formato; os apelidos de campo
// (titulo/title, passagem/scripture, oracao/prayer) são resolvidos uma única
// vez no parse.
type DayContent struct {
	Day        int            `json:"day"`
	Title      string         `json:"title"`
	Scripture  Scripture      `json:"scripture"`
	Devotional string         `json:"devotional"`
	Quiz       []QuizQuestion `json:"quiz"`
	Prayer     string         `json:"prayer"`
}

// ExperienceContent é o resultado do parse do JSON de conteúdo.
type ExperienceContent struct {
	Days []DayContent
	// hasDayField indica se a forma original trazia alguma sequência
	// indexada por dia (array no topo ou campo daily_content). Sem isso,
	// TotalDays cai no fallback histórico de 21.
	hasDayField bool
}

// TotalDays devolve o total de dias do programa.
// Regra preservada do comportamento original:
//   - sequência no topo com itens      -> tamanho da sequência
//   - daily_content presente (mesmo []) -> tamanho de daily_content
//   - nenhuma sequência no formato      -> DefaultTotalDays (21)
//
// Um daily_content explicitamente vazio resulta em 0, que os chamadores devem
// tratar como ErrContentMissing antes de qualquer cálculo.
func (c ExperienceContent) TotalDays() int {
	if !c.hasDayField {
		return DefaultTotalDays
	}
	return len(c.Days)
}

// DayFor devolve o conteúdo canônico do dia pedido (1-based), aplicando os
// fallbacks por campo. Sempre devolve algo exibível, mesmo para dias sem
// entrada no JSON.
func (c ExperienceContent) DayFor(day int) DayContent {
	for _, d := range c.Days {
		if d.Day == day {
			return fillDayFallbacks(d)
		}
	}
	return fillDayFallbacks(DayContent{Day: day})
}

// --- formas brutas, tolerantes a apelidos ---

type rawScripture struct {
	Reference  string `json:"reference"`
	Text       string `json:"text"`
	Referencia string `json:"referencia"`
	Texto      string `json:"texto"`
}

type rawQuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectIndex  int      `json:"correctIndex"`
	CorrectIndex2 *int     `json:"correct_index"`
}

type rawDayContent struct {
	Day        int               `json:"day"`
	Title      string            `json:"title"`
	Titulo     string            `json:"titulo"`
	Scripture  *rawScripture     `json:"scripture"`
	Passagem   *rawScripture     `json:"passagem"`
	Devotional string            `json:"devotional"`
	Devocional string            `json:"devocional"`
	Quiz       []rawQuizQuestion `json:"quiz"`
	Prayer     string            `json:"prayer"`
	Oracao     string            `json:"oracao"`
}

// contentEnvelope cobre o formato de objeto {"daily_content": [...]}.
// RawMessage para distinguir "campo ausente" de "campo vazio".
type contentEnvelope struct {
	DailyContent json.RawMessage `json:"daily_content"`
}

// ParseExperienceContent normaliza o JSON autorado em ExperienceContent.
// Aceita tanto um array de dias no topo quanto um objeto com daily_content.
// Conteúdo nulo, vazio ou irreconhecível nunca é erro aqui: vira o formato
// legado sem dias (fallback de 21), e cabe ao chamador decidir o que fazer.
func ParseExperienceContent(raw datatypes.JSON) ExperienceContent {
	if len(raw) == 0 {
		return ExperienceContent{}
	}

	// 1) array direto no topo
	var rawDays []rawDayContent
	if err := json.Unmarshal(raw, &rawDays); err == nil {
		if len(rawDays) == 0 {
			// array vazio no topo: formato sem daily_content, cai no fallback
			return ExperienceContent{}
		}
		return ExperienceContent{Days: normalizeDays(rawDays), hasDayField: true}
	}

	// 2) objeto com daily_content
	var env contentEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ExperienceContent{}
	}
	if env.DailyContent == nil {
		// objeto sem o campo: conteúdo legado
		return ExperienceContent{}
	}
	if err := json.Unmarshal(env.DailyContent, &rawDays); err != nil {
		return ExperienceContent{}
	}
	// daily_content presente, mesmo vazio, conta como formato explícito
	return ExperienceContent{Days: normalizeDays(rawDays), hasDayField: true}
}

func normalizeDays(rawDays []rawDayContent) []DayContent {
	days := make([]DayContent, 0, len(rawDays))
	for i, rd := range rawDays {
		day := rd.Day
		if day <= 0 {
			// sem número explícito a posição na sequência determina o dia
			day = i + 1
		}
		days = append(days, DayContent{
			Day:        day,
			Title:      firstNonEmpty(rd.Title, rd.Titulo),
			Scripture:  normalizeScripture(rd.Scripture, rd.Passagem),
			Devotional: firstNonEmpty(rd.Devotional, rd.Devocional),
			Quiz:       normalizeQuiz(rd.Quiz),
			Prayer:     firstNonEmpty(rd.Prayer, rd.Oracao),
		})
	}
	return days
}

func normalizeScripture(canonical, alias *rawScripture) Scripture {
	var s Scripture
	if canonical != nil {
		s.Reference = firstNonEmpty(canonical.Reference, canonical.Referencia)
		s.Text = firstNonEmpty(canonical.Text, canonical.Texto)
	}
	if alias != nil {
		s.Reference = firstNonEmpty(s.Reference, alias.Referencia, alias.Reference)
		s.Text = firstNonEmpty(s.Text, alias.Texto, alias.Text)
	}
	return s
}

func normalizeQuiz(raw []rawQuizQuestion) []QuizQuestion {
	if len(raw) == 0 {
		return nil
	}
	quiz := make([]QuizQuestion, 0, len(raw))
	for _, rq := range raw {
		idx := rq.CorrectIndex
		if rq.CorrectIndex2 != nil {
			idx = *rq.CorrectIndex2
		}
		quiz = append(quiz, QuizQuestion{
			Question:     rq.Question,
			Options:      rq.Options,
			CorrectIndex: idx,
		})
	}
	return quiz
}

func fillDayFallbacks(d DayContent) DayContent {
	if d.Title == "" {
		d.Title = fmt.Sprintf("Dia %d", d.Day)
	}
	if d.Scripture.Text == "" {
		d.Scripture.Text = FallbackScripture
	}
	if d.Devotional == "" {
		d.Devotional = FallbackDevotional
	}
	if d.Prayer == "" {
		d.Prayer = FallbackPrayer
	}
	return d
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
