package i18n

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Messages contains localized strings for the bot.
type Messages struct {
	StartGreeting      string `yaml:"start_greeting"`
	PingButton         string `yaml:"ping_button"`
	AboutButton        string `yaml:"about_button"`
	DeleteButton       string `yaml:"delete_button"`
	Pong               string `yaml:"pong"`
	AboutText          string `yaml:"about_text"`
	UnsupportedMessage string `yaml:"unsupported_message"`
	ForwardedNote      string `yaml:"forwarded_note"`
	InvalidAction      string `yaml:"invalid_action"`
	InvalidChat        string `yaml:"invalid_chat"`
}

// Languages lists the bundled languages.
var Languages = []string{"en", "ru"}

// Bundle combines language code and messages.
type Bundle struct {
	// Lang is the selected language.
	Lang string
	// Messages are localized strings.
	Messages Messages
}

//go:embed *.yaml
var files embed.FS

// Load loads i18n messages for the requested language.
func Load(lang string) (Bundle, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = "en"
	}

	messages, err := loadMessages(lang)
	if err != nil && lang != "en" {
		messages, err = loadMessages("en")
		if err != nil {
			return Bundle{}, err
		}
		lang = "en"
	} else if err != nil {
		return Bundle{}, err
	}

	return Bundle{Lang: lang, Messages: messages}, nil
}

func loadMessages(lang string) (Messages, error) {
	data, err := files.ReadFile(fmt.Sprintf("%s.yaml", lang))
	if err != nil {
		return Messages{}, err
	}
	var msg Messages
	if err := yaml.Unmarshal(data, &msg); err != nil {
		return Messages{}, err
	}
	return msg, nil
}

// LoadAll loads every bundled language keyed by language code.
func LoadAll() (map[string]Messages, error) {
	out := make(map[string]Messages, len(Languages))
	for _, lang := range Languages {
		msg, err := loadMessages(lang)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", lang, err)
		}
		out[lang] = msg
	}
	return out, nil
}
