package httpapi

import (
	"html/template"

	"github.com/i474232898/school-board/internal/display"
)

type pageView struct {
	Regions      map[display.Region]display.RegionState
	PollInterval int // milliseconds
}

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"region": func(v pageView, id string) display.RegionState {
		return v.Regions[display.Region(id)]
	},
}).Parse(`<!DOCTYPE html>
<html lang="ru">
<head>
<meta charset="utf-8">
<title>Школьное табло</title>
<style>
#notifications-container { transition: opacity 1s ease; }
.hidden { display: none; }
</style>
</head>
<body>
{{with region . "loader"}}<div id="loader" class="{{if not .Visible}}hidden{{end}}">Загрузка...</div>{{end}}
{{with region . "main-content"}}<div id="main-content" class="{{if not .Visible}}hidden{{end}}">{{end}}
<header>
{{with region . "current-date"}}<span id="current-date">{{.HTML}}</span>{{end}}
{{with region . "current-time"}}<span id="current-time">{{.HTML}}</span>{{end}}
</header>
{{with region . "notifications-container"}}<section id="notifications-container" style="opacity: {{.Opacity}}">{{.HTML}}</section>{{end}}
{{with region . "daily-routine"}}<section id="daily-routine">{{.HTML}}</section>{{end}}
{{with region . "date-heading"}}<h2 id="date-heading">{{.HTML}}</h2>{{end}}
{{with region . "timetable"}}<section id="timetable">{{.HTML}}</section>{{end}}
</div>
<script>
(function () {
  var seen = {};
  function apply(r) {
    var el = document.getElementById(r.id);
    if (!el || seen[r.id] === r.version) { return; }
    seen[r.id] = r.version;
    if (r.id !== "loader" && r.id !== "main-content") { el.innerHTML = r.html; }
    el.style.opacity = r.opacity;
    el.classList.toggle("hidden", !r.visible);
  }
  setInterval(function () {
    fetch("/api/v1/regions").then(function (res) { return res.json(); })
      .then(function (page) { page.regions.forEach(apply); })
      .catch(function () {});
  }, {{.PollInterval}});
})();
</script>
</body>
</html>
`))
