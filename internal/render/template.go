package render

import "html/template"

// ProfileTemplate is the name gin renders public profiles with
const ProfileTemplate = "profile.html"

// NotFoundTemplate is the name of the missing profile page
const NotFoundTemplate = "not_found.html"

// Templates parses the public page templates for gin's HTML renderer
func Templates() *template.Template {
	t := template.Must(template.New(ProfileTemplate).Parse(profileHTML))
	template.Must(t.New(NotFoundTemplate).Parse(notFoundHTML))
	return t
}

const headHTML = `<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Meta.Title}}</title>
<meta name="description" content="{{.Meta.Description}}">
{{- if .Meta.CanonicalURL}}
<link rel="canonical" href="{{.Meta.CanonicalURL}}">
<meta property="og:url" content="{{.Meta.CanonicalURL}}">
{{- end}}
<meta property="og:title" content="{{.Meta.Title}}">
<meta property="og:description" content="{{.Meta.Description}}">
<meta property="og:site_name" content="{{.Meta.SiteName}}">
{{- if .Meta.Type}}
<meta property="og:type" content="{{.Meta.Type}}">
{{- end}}
{{- if .Meta.Image}}
<meta property="og:image" content="{{.Meta.Image}}">
<meta property="og:image:width" content="400">
<meta property="og:image:height" content="400">
<meta property="og:image:alt" content="{{.Meta.ImageAlt}}">
<meta name="twitter:image" content="{{.Meta.Image}}">
{{- end}}
<meta name="twitter:card" content="{{.Meta.TwitterCard}}">
<meta name="twitter:title" content="{{.Meta.Title}}">
<meta name="twitter:description" content="{{.Meta.Description}}">`

const profileHTML = `<!DOCTYPE html>
<html lang="en">
<head>
` + headHTML + `
</head>
<body class="layout-{{.Layout}}">
<main>
  <header class="profile">
    {{- if .AvatarURL}}
    <img class="avatar" src="{{.AvatarURL}}" alt="{{.Meta.ImageAlt}}" width="96" height="96">
    {{- else}}
    <div class="avatar avatar-fallback">{{.Initial}}</div>
    {{- end}}
    <h1>{{.DisplayName}}</h1>
    <p class="username">@{{.Username}}</p>
    {{- if .Bio}}
    <p class="bio">{{.Bio}}</p>
    {{- end}}
  </header>
  <section class="blocks">
    {{- range .Sections}}
    {{- if .Title}}
    <h3 class="section-title">{{.Title}}</h3>
    {{- end}}
    {{- range .Links}}
    <a class="block span-{{.Span}}{{if .Highlighted}} highlighted{{end}}" href="{{.URL}}" target="_blank" rel="noreferrer"
       data-block-id="{{.ID}}" data-platform="{{.Platform}}" data-color="{{.Style.Color}}" data-bg="{{.Style.BgColor}}">
      <span class="title">{{.Title}}</span>
    </a>
    {{- end}}
    {{- end}}
    {{- if .Empty}}
    <p class="empty">{{.EmptyMessage}}</p>
    {{- end}}
  </section>
  <footer>Made with <strong>Bion</strong></footer>
</main>
<script>
document.querySelectorAll("a[data-block-id]").forEach(function (a) {
  a.addEventListener("click", function () {
    navigator.sendBeacon("{{.ClickPath}}" + a.dataset.blockId + "/click");
  });
});
</script>
</body>
</html>
`

const notFoundHTML = `<!DOCTYPE html>
<html lang="en">
<head>
` + headHTML + `
</head>
<body>
<main>
  <h1>{{.Meta.Title}}</h1>
  <p>{{.Meta.Description}}</p>
</main>
</body>
</html>
`
