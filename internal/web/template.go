package web

const formTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; color: #101F38; }
.result { padding: 1rem; margin-top: 1rem; border-radius: 4px; }
.result p { margin: 0.25rem 0; }
.empty { background: #cfcccc; }
.found { background: #6cd65e; }
.not-found { background: #f04f4f; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Enter an ISIN No, and we will check if there's a corresponding record in our
<a href="https://assets.publishing.service.gov.uk/media/66c44db32e8f04b086cdf40b/approved-offshore-reporting-funds-list.ods">List of reporting funds A to Z</a>
of <a href="https://www.gov.uk/government/publications/offshore-funds-list-of-reporting-funds">Approved offshore reporting funds</a>.</p>
<form method="get" action="/">
<label for="q">{{.KeyColumn}}</label>
<input id="q" name="q" type="text" placeholder="{{.InputPlaceholder}}" value="{{.Query}}" autofocus>
<button type="submit">{{.TriggerLabel}}</button>
</form>
<p>Current input: {{.Query}}</p>
<div class="result {{.Result.Class}}">
{{range .Result.Lines}}<p>{{.}}</p>
{{end}}</div>
</body>
</html>
`
