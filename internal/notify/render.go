package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/spec-kit/user-admin-service/internal/catalog"
)

// copySet holds the fixed per-locale wording of a credential notification.
type copySet struct {
	subject            string
	greeting           string
	intro              string
	credentialsHeading string
	emailLabel         string
	passwordLabel      string
	roleHeading        string
	permissionsHeading string
	ctaLabel           string
	securityNote       string
	sentBy             string
	dir                string
}

var copyByLocale = map[string]copySet{
	catalog.LocaleArabic: {
		subject:            "بيانات حسابك الجديد في %s",
		greeting:           "مرحباً %s،",
		intro:              "تم إنشاء حساب جديد لك. ستجد أدناه بيانات الدخول الخاصة بك.",
		credentialsHeading: "بيانات الدخول",
		emailLabel:         "البريد الإلكتروني",
		passwordLabel:      "كلمة المرور",
		roleHeading:        "الدور",
		permissionsHeading: "الصلاحيات",
		ctaLabel:           "تسجيل الدخول",
		securityNote:       "ننصح بتغيير كلمة المرور بعد أول تسجيل دخول.",
		sentBy:             "أرسلت بواسطة %s (%s)",
		dir:                "rtl",
	},
	catalog.LocaleEnglish: {
		subject:            "Your new account credentials for %s",
		greeting:           "Hello %s,",
		intro:              "A new account has been created for you. Your sign-in credentials are below.",
		credentialsHeading: "Sign-in credentials",
		emailLabel:         "Email",
		passwordLabel:      "Password",
		roleHeading:        "Role",
		permissionsHeading: "Permissions",
		ctaLabel:           "Sign in",
		securityNote:       "We recommend changing your password after your first sign-in.",
		sentBy:             "Sent by %s (%s)",
		dir:                "ltr",
	},
}

// message is the single data structure both renderings derive from.
type message struct {
	Dir                string
	Subject            string
	Greeting           string
	Intro              string
	CredentialsHeading string
	EmailLabel         string
	Email              string
	PasswordLabel      string
	Password           string
	RoleHeading        string
	RoleLabel          string
	PermissionsHeading string
	Permissions        []string
	CTALabel           string
	CTAURL             string
	SecurityNote       string
	SentBy             string
	AppName            string
	LogoURL            string
	AccentColor        string
}

func buildMessage(req Request, branding Branding, locale string) message {
	wording, ok := copyByLocale[locale]
	if !ok {
		wording = copyByLocale[catalog.LocaleArabic]
		locale = catalog.LocaleArabic
	}

	permissions := make([]string, 0, len(req.Permissions))
	for _, key := range req.Permissions {
		permissions = append(permissions, catalog.Label(key, locale))
	}

	sentBy := ""
	if req.SenderName != "" {
		sentBy = fmt.Sprintf(wording.sentBy, req.SenderName, catalog.Label(req.SenderRole, locale))
	}

	return message{
		Dir:                wording.dir,
		Subject:            fmt.Sprintf(wording.subject, branding.AppName),
		Greeting:           fmt.Sprintf(wording.greeting, req.RecipientName),
		Intro:              wording.intro,
		CredentialsHeading: wording.credentialsHeading,
		EmailLabel:         wording.emailLabel,
		Email:              req.IssuedEmail,
		PasswordLabel:      wording.passwordLabel,
		Password:           req.IssuedPassword,
		RoleHeading:        wording.roleHeading,
		RoleLabel:          catalog.Label(req.Role, locale),
		PermissionsHeading: wording.permissionsHeading,
		Permissions:        permissions,
		CTALabel:           wording.ctaLabel,
		CTAURL:             branding.AppURL,
		SecurityNote:       wording.securityNote,
		SentBy:             sentBy,
		AppName:            branding.AppName,
		LogoURL:            branding.LogoURL,
		AccentColor:        branding.AccentColor,
	}
}

var htmlBody = htmltemplate.Must(htmltemplate.New("credential_html").Parse(`<!DOCTYPE html>
<html dir="{{.Dir}}">
<head><meta charset="utf-8"></head>
<body style="margin:0;font-family:Tahoma,Arial,sans-serif;background-color:#f4f4f4;">
<div style="max-width:600px;margin:0 auto;background-color:#ffffff;">
  <div style="background-color:{{.AccentColor}};padding:24px;text-align:center;">
    {{if .LogoURL}}<img src="{{.LogoURL}}" alt="{{.AppName}}" style="max-height:48px;"/>{{else}}<span style="color:#ffffff;font-size:20px;font-weight:bold;">{{.AppName}}</span>{{end}}
  </div>
  <div style="padding:24px;">
    <p>{{.Greeting}}</p>
    <p>{{.Intro}}</p>
    <h3 style="border-bottom:1px solid #dddddd;padding-bottom:6px;">{{.CredentialsHeading}}</h3>
    <table style="width:100%;border-collapse:collapse;">
      <tr><td style="padding:6px 0;font-weight:bold;">{{.EmailLabel}}</td><td style="padding:6px 0;">{{.Email}}</td></tr>
      <tr><td style="padding:6px 0;font-weight:bold;">{{.PasswordLabel}}</td><td style="padding:6px 0;">{{.Password}}</td></tr>
    </table>
    <h3 style="border-bottom:1px solid #dddddd;padding-bottom:6px;">{{.RoleHeading}}</h3>
    <p>{{.RoleLabel}}</p>
    {{if .Permissions}}<h3 style="border-bottom:1px solid #dddddd;padding-bottom:6px;">{{.PermissionsHeading}}</h3>
    <ul>{{range .Permissions}}<li>{{.}}</li>{{end}}</ul>{{end}}
    <p style="text-align:center;margin:32px 0;">
      <a href="{{.CTAURL}}" style="background-color:{{.AccentColor}};color:#ffffff;padding:12px 32px;text-decoration:none;border-radius:4px;">{{.CTALabel}}</a>
    </p>
    <p style="color:#888888;font-size:12px;">{{.SecurityNote}}</p>
  </div>
  <div style="background-color:#f4f4f4;padding:16px;text-align:center;color:#888888;font-size:12px;">
    {{if .SentBy}}<p style="margin:0;">{{.SentBy}}</p>{{end}}
    <p style="margin:4px 0 0 0;">{{.AppName}}</p>
  </div>
</div>
</body>
</html>
`))

var textBody = texttemplate.Must(texttemplate.New("credential_text").Parse(`{{.Greeting}}

{{.Intro}}

{{.CredentialsHeading}}
{{.EmailLabel}}: {{.Email}}
{{.PasswordLabel}}: {{.Password}}

{{.RoleHeading}}: {{.RoleLabel}}
{{if .Permissions}}
{{.PermissionsHeading}}:
{{range .Permissions}}- {{.}}
{{end}}{{end}}
{{.CTALabel}}: {{.CTAURL}}

{{.SecurityNote}}
{{if .SentBy}}
{{.SentBy}}{{end}}
{{.AppName}}
`))

// render produces the subject and both bodies for a request. Identical
// input yields byte-identical output.
func render(req Request, branding Branding) (subject, html, text string, err error) {
	msg := buildMessage(req, branding, req.Locale)

	var htmlBuf bytes.Buffer
	if err := htmlBody.Execute(&htmlBuf, msg); err != nil {
		return "", "", "", fmt.Errorf("render html body: %w", err)
	}

	var textBuf bytes.Buffer
	if err := textBody.Execute(&textBuf, msg); err != nil {
		return "", "", "", fmt.Errorf("render text body: %w", err)
	}

	return msg.Subject, htmlBuf.String(), textBuf.String(), nil
}
