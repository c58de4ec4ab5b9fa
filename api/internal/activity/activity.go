package activity

import (
	"lottie-studio/api/internal/genagent"
	"lottie-studio/api/internal/roster"
)

// Activity is the central record. It is created empty, mutated in a fixed step
// order by one of the builders and becomes immutable once exported. Two stages
// exist on disk: the blueprint (draft pending human review) and the final
// activity (appended to history).
type Activity struct {
	ID               string                       `json:"id"`
	Media            Media                        `json:"media"`
	Sentence         string                       `json:"sentence"`
	Questions        map[string]genagent.Question `json:"questions"`
	GroupAlias       string                       `json:"group_alias"`
	CefrLevel        string                       `json:"cefr_level"`
	TargetVocabulary []string                     `json:"target_vocabulary"`
	TargetGrammar    GrammarTarget                `json:"target_grammar"`
	ITokens          map[string]any               `json:"itokens"`
	Submitted        bool                         `json:"submitted"`
	Metadata         Metadata                     `json:"metadata"`
}

type Media struct {
	Style           string          `json:"style"`
	ImageSrc        string          `json:"image_src"`
	TextToSpeech    TextToSpeech    `json:"text_to_speech"`
	BackgroundMusic BackgroundMusic `json:"background_music"`
}

type TextToSpeech struct {
	Src   string `json:"src"`
	Voice string `json:"voice"`
}

type BackgroundMusic struct {
	Src  string `json:"src"`
	Loop bool   `json:"loop"`
}

// GrammarTarget distinguishes "no grammar targets" from "never computed".
// Grammar resolution is not implemented yet, so builders leave Resolved false.
type GrammarTarget struct {
	Resolved bool     `json:"resolved"`
	Items    []string `json:"items"`
}

type Metadata struct {
	Analyst           string             `json:"analyst"`
	ModelAlias        string             `json:"model_alias"`
	ModelVersion      string             `json:"model_version"`
	SandboxSlot       *roster.Slot       `json:"sandbox_slot"`
	TargetMaterial    []Material         `json:"target_material"`
	InterestTokenLogs *TokenSelectionLog `json:"ms_interest_token_logs,omitempty"`
}

// Material is the metadata snapshot of one resolved target material.
type Material struct {
	Week         int    `json:"week"`
	BookTitle    string `json:"book_title"`
	Title        string `json:"title"`
	MaterialType string `json:"material_type"`
	URL          string `json:"url"`
}

// TokenSelectionLog records which personalization datum was picked for which
// student, so a reviewer can trace the generated scenario back.
type TokenSelectionLog struct {
	DataPoint     any    `json:"data_point"`
	TargetStudent string `json:"target_student"`
}
