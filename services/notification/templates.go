package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"nailart/models"
)

const customerSubject = "Randevu talebiniz alındı"

var adminTemplate = template.Must(template.New("admin").Parse(`
<h2>Yeni Randevu Talebi</h2>
<p><strong>Ad Soyad:</strong> {{.FullName}}</p>
<p><strong>E-posta:</strong> {{.Email}}</p>
<p><strong>Hizmet:</strong> {{.ServiceType}}</p>
{{- if .Addons}}
<p><strong>Ekstralar:</strong> {{.Addons}}</p>
{{- end}}
<p><strong>Tarih:</strong> {{.AppointmentDate}}</p>
<p><strong>Saat:</strong> {{.AppointmentTime}}</p>
`))

var customerTemplate = template.Must(template.New("customer").Parse(`
<h2>Randevunuz Alındı</h2>
<p>Merhaba {{.FullName}},</p>
<p>Randevu talebiniz başarıyla alındı.</p>
<p><strong>Hizmet:</strong> {{.ServiceType}}</p>
<p><strong>Tarih:</strong> {{.AppointmentDate}}</p>
<p><strong>Saat:</strong> {{.AppointmentTime}}</p>
<p>En kısa sürede sizinle iletişime geçeceğiz.</p>
`))

type templateData struct {
	FullName        string
	Email           string
	ServiceType     string
	Addons          string
	AppointmentDate string
	AppointmentTime string
}

func newTemplateData(in models.AppointmentInput) templateData {
	return templateData{
		FullName:        strings.TrimSpace(in.FullName()),
		Email:           in.Email,
		ServiceType:     in.ServiceType,
		Addons:          strings.Join(in.Addons, ", "),
		AppointmentDate: in.AppointmentDate,
		AppointmentTime: in.AppointmentTime,
	}
}

func render(t *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func adminMessage(in models.AppointmentInput, recipients []string) (EmailMessage, error) {
	data := newTemplateData(in)
	html, err := render(adminTemplate, data)
	if err != nil {
		return EmailMessage{}, err
	}
	return EmailMessage{
		To:      recipients,
		Subject: fmt.Sprintf("Yeni randevu: %s - %s %s", data.FullName, data.AppointmentDate, data.AppointmentTime),
		HTML:    html,
	}, nil
}

func customerMessage(in models.AppointmentInput) (EmailMessage, error) {
	html, err := render(customerTemplate, newTemplateData(in))
	if err != nil {
		return EmailMessage{}, err
	}
	return EmailMessage{
		To:      []string{in.Email},
		Subject: customerSubject,
		HTML:    html,
	}, nil
}
