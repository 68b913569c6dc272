package resend

import (
	"bytes"
	"html/template"

	"github.com/resend/resend-go/v2"

	"cadence/internal/digest"
)

type ResendNotifier struct {
	APIKey string
	From   string
	To     string
}

const htmlTemplate = `
<h2>Your habit digest</h2>
{{range .Weeks}}
<p><strong>{{.WeekLabel}}</strong>: {{.TotalCompleted}}/{{.TotalExpected}} ({{.Percentage}}%)</p>
{{end}}
{{if .Highlights}}
<p>Streaks:</p>
<ul>
{{range .Highlights}}
  <li>{{.HabitName}}: {{.CurrentStreak}} current, {{.BestStreak}} best</li>
{{end}}
</ul>
{{end}}
`

func (r *ResendNotifier) SendDigest(d digest.Digest) error {
	tmpl, err := template.New("digest").Parse(htmlTemplate)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, d); err != nil {
		return err
	}

	client := resend.NewClient(r.APIKey)
	params := &resend.SendEmailRequest{
		From:    r.From,
		To:      []string{r.To},
		Subject: "Your weekly habit digest",
		Html:    buf.String(),
	}

	_, err = client.Emails.Send(params)
	return err
}

var _ digest.Notifier = (*ResendNotifier)(nil)
