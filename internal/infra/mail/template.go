package mail

import "strings"

// Placeholders únicos, escolhidos para não colidir com HTML/CSS (nada de
// chaves soltas dentro de um documento cheio de CSS).
const (
	placeholderBody   = "__AI_EMAIL_BODY_CONTENT__"
	placeholderSender = "__SENDER_FULL_NAME__"
)

// TemplateRenderer produz o documento HTML final embrulhando o corpo gerado
// no shell visual da marca. Transformação pura de string, sem efeito colateral.
type TemplateRenderer struct {
	BrandName string
	BrandURL  string
}

func NewTemplateRenderer(brandName, brandURL string) *TemplateRenderer {
	return &TemplateRenderer{BrandName: brandName, BrandURL: brandURL}
}

func (r *TemplateRenderer) RenderShell(subject, bodyHTML, senderName string) string {
	shell := r.baseTemplate(subject)

	rendered := strings.ReplaceAll(shell, placeholderBody, bodyHTML)
	rendered = strings.ReplaceAll(rendered, placeholderSender, senderName)
	return rendered
}

func (r *TemplateRenderer) baseTemplate(subject string) string {
	const (
		primaryBlue   = "#005ea6"
		secondaryBlue = "#007bff"
		lightBlueBg   = "#f0f7ff"
		containerBg   = "#ffffff"
		darkText      = "#333333"
		lightText     = "#ffffff"
		footerText    = "#777777"
		borderColor   = "#dee2e6"
	)

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta http-equiv="X-UA-Compatible" content="ie=edge">
    <title>` + subject + `</title>
    <style>
        @import url('https://fonts.googleapis.com/css2?family=Inter:wght@400;600;700&display=swap');
        body { margin: 0; padding: 0; width: 100% !important; -webkit-text-size-adjust: 100%; -ms-text-size-adjust: 100%; background-color: ` + lightBlueBg + `; font-family: 'Inter', sans-serif; }
        .email-container { width: 100%; max-width: 640px; margin: 40px auto; background-color: ` + containerBg + `; border-radius: 12px; overflow: hidden; border: 1px solid ` + borderColor + `; box-shadow: 0 4px 12px rgba(0,0,0,0.05); }
        .header { background-color: ` + primaryBlue + `; padding: 25px 30px; text-align: center; }
        .header h1 { margin: 10px 0 0 0; font-size: 26px; font-weight: 700; color: ` + lightText + `; }
        .content { padding: 35px 40px; color: ` + darkText + `; font-size: 16px; line-height: 1.7; }
        .content p { margin: 0 0 18px 0; }
        .content .salutation { font-weight: 600; margin-bottom: 20px; }
        .content .closing { margin-top: 25px; }
        .content strong { font-weight: 600; color: ` + darkText + `; }
        .content a { color: ` + secondaryBlue + `; text-decoration: underline; font-weight: 600; }
        .signature { margin-top: 25px; padding-top: 15px; border-top: 1px solid ` + borderColor + `; }
        .signature p { margin: 0 0 5px 0; font-size: 15px; line-height: 1.5; font-weight: 600; color: ` + primaryBlue + `; }
        .signature .sender-title { font-size: 14px; color: ` + darkText + `; font-weight: 400; }
        .footer { background-color: ` + lightBlueBg + `; padding: 20px 30px; text-align: center; font-size: 13px; color: ` + footerText + `; border-top: 1px solid ` + borderColor + `; }
        .footer a { color: ` + secondaryBlue + `; text-decoration: none; }
        @media only screen and (max-width: 640px) {
            .email-container { width: 95% !important; margin: 20px auto !important; border-radius: 8px; }
            .content { padding: 25px 20px; font-size: 15px; }
            .header { padding: 20px; }
            .header h1 { font-size: 22px; }
            .footer { padding: 15px 20px; font-size: 12px; }
        }
    </style>
</head>
<body style="background-color: ` + lightBlueBg + `;">
    <div class="email-container">
        <div class="header">
             <h1 style="color: ` + lightText + `;">` + r.BrandName + `</h1>
        </div>
        <div class="content">

            ` + placeholderBody + `

            <div class="signature">
                <p style="color: ` + primaryBlue + `;"><strong style="color: ` + primaryBlue + `;">` + placeholderSender + `</strong></p>
                <p class="sender-title" style="color: ` + darkText + `;">` + r.BrandName + `</p>
            </div>
        </div>
        <div class="footer">
            <p style="margin-bottom: 5px;">` + r.BrandName + ` | <a href="` + r.BrandURL + `">` + r.BrandURL + `</a></p>
            <p style="margin:0;"><small>&copy; 2025 ` + r.BrandName + `</small></p>
        </div>
    </div>
</body>
</html>
`)
	return b.String()
}
