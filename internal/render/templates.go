package render

import "html/template"

var notificationsTmpl = template.Must(template.New("notifications").Parse(
	`{{range .}}<div class="notification-item"><h3>{{.Title}}</h3><p>{{.Description}}</p></div>{{end}}`))

var routineTmpl = template.Must(template.New("routine").Parse(
	`<h3>{{.Heading}}</h3>{{range .Lines}}<p>{{.}}</p>{{end}}`))

var timetableTmpl = template.Must(template.New("timetable").Parse(
	`<table>{{range .}}<tr><th colspan="2">{{.Class}}</th></tr>` +
		`{{range .Lessons}}<tr><td>{{.Name}}</td><td>{{.Classroom}}</td></tr>{{end}}{{end}}</table>`))

var weatherTmpl = template.Must(template.New("weather").Parse(
	`<h3>{{.Name}}</h3><p class="weather">{{.Temp}}</p>`))

var paragraphTmpl = template.Must(template.New("paragraph").Parse(`<p>{{.}}</p>`))
