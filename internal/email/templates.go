package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateManager хранит распарсенные html/template шаблоны писем.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер с встроенными шаблонами.
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	// Встроенные шаблоны; ошибки парсинга здесь - ошибка программиста
	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			panic(fmt.Sprintf("bad builtin email template %q: %v", name, err))
		}
	}

	return tm
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

var builtinTemplates = map[string]string{
	"verification": `
<h2>Welcome to Guzo!</h2>
<p>Please confirm your email address to activate your account.</p>
<p><a href="{{.ActionURL}}">{{.ActionText}}</a></p>
<p>If you did not create an account, you can safely ignore this email.</p>`,

	"booking_status": `
<h2>Booking update</h2>
<p>Your booking for <b>{{.OfferingTitle}}</b> is now <b>{{.Status}}</b>.</p>
{{if .Note}}<p>Message from your host: {{.Note}}</p>{{end}}
<p>You can review the booking in your dashboard.</p>`,

	"notification": `
<p>{{.Message}}</p>`,
}
