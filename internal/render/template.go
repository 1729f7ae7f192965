package render

// The document carries its styles inline so a headless renderer can convert
// it to PDF without network access.
const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} — {{.Subtitle}}</title>
<style>
body { font-family: Georgia, 'Times New Roman', serif; color: #1a1a1a; margin: 40px; font-size: 13px; }
h1 { font-size: 22px; text-align: center; margin-bottom: 2px; }
h2 { font-size: 15px; border-bottom: 1px solid #999; padding-bottom: 3px; margin-top: 28px; }
p.subtitle { text-align: center; color: #555; margin-top: 0; }
table { border-collapse: collapse; width: 100%; margin-top: 8px; }
th, td { border: 1px solid #bbb; padding: 5px 8px; text-align: left; vertical-align: top; }
th { background: #f0f0f0; font-weight: bold; }
td.none { text-align: center; color: #777; font-style: italic; }
table.facts td { border: none; padding: 3px 8px 3px 0; }
table.facts td.label { color: #555; width: 260px; }
p.note { font-size: 12px; color: #444; margin-top: 6px; }
div.signatures { display: flex; justify-content: space-between; margin-top: 60px; }
div.signatures div { width: 45%; border-top: 1px solid #333; padding-top: 6px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="subtitle">{{.Subtitle}}</p>

<table class="facts">
{{range .HeaderFacts}}<tr><td class="label">{{.Label}}</td><td>{{.Value}}</td></tr>
{{end}}</table>

<h2>Jurisdiction &amp; Dispute Resolution</h2>
<table class="facts">
{{range .Jurisdiction}}<tr><td class="label">{{.Label}}</td><td>{{.Value}}</td></tr>
{{end}}</table>

<h2>Capacity Bookings &amp; Charging</h2>
<table class="facts">
{{range .Capacity}}<tr><td class="label">{{.Label}}</td><td>{{.Value}}</td></tr>
{{end}}</table>

<h2>Client KYC</h2>
<table class="facts">
{{range .ClientKYC}}<tr><td class="label">{{.Label}}</td><td>{{.Value}}</td></tr>
{{end}}</table>

{{range .Tables}}<h2>{{.Title}}</h2>
<table>
<tr>{{range .Cols}}<th>{{.Header}}</th>{{end}}</tr>
{{if .Rows}}{{$cols := .Cols}}{{range .Rows}}{{$row := .}}<tr>{{range $cols}}<td>{{cell .Kind $row .Key}}</td>{{end}}</tr>
{{end}}{{else}}<tr><td class="none" colspan="{{len .Cols}}">None</td></tr>
{{end}}</table>
{{if .Note}}<p class="note">{{.Note}}</p>{{end}}
{{end}}
<h2>Notes</h2>
<p>{{.Notes}}</p>

<div class="signatures">
<div>For the Company<br><br>{{.SignCompany}}</div>
<div>For the Client<br><br>{{.SignClient}}</div>
</div>
</body>
</html>
`
