package server

import (
	"html/template"
	"net/http"
)

func (s *Server) render(w http.ResponseWriter, t *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.Execute(w, data); err != nil {
		s.logger.Error("template render failed", "template", t.Name(), "error", err)
	}
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Document Processor</title></head>
<body>
<h1>&#128196; Document Processor</h1>
<p>Upload documents to extract and analyze content.</p>
<form action="/upload" method="post" enctype="multipart/form-data">
  <input type="file" name="files" multiple accept=".pdf,.docx,.doc,.png,.jpg,.jpeg,.txt">
  <button type="submit">Process</button>
</form>
<p><a href="/export">Download processed documents (XLSX)</a></p>
</body>
</html>
`))

var resultsTmpl = template.Must(template.New("results").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Results - Document Processor</title></head>
<body>
<h1>Results</h1>
<p><a href="/">&#8592; Upload more files</a></p>
{{range .}}
<hr>
<h2>{{.FileName}}</h2>
{{if .Error}}
  <p><strong>Error:</strong> {{.Error}}</p>
{{else}}
  {{range .Warnings}}<p><em>Warning: {{.}}</em></p>{{end}}
  <details open>
    <summary>&#128221; Extracted Text</summary>
    <pre>{{.Text}}</pre>
  </details>
  <details>
    <summary>&#128269; Analysis</summary>
    <h3>Entities</h3>
    <p>{{if .Entities}}{{range $i, $e := .Entities}}{{if $i}}, {{end}}{{$e}}{{end}}{{else}}No entities found.{{end}}</p>
    <h3>Keywords</h3>
    <p>{{if .Keywords}}{{range $i, $k := .Keywords}}{{if $i}}, {{end}}{{$k}}{{end}}{{else}}No keywords found.{{end}}</p>
    <h3>Summary</h3>
    <p>{{.Summary}}</p>
    {{if .Points}}<ul>{{range .Points}}<li>{{.}}</li>{{end}}</ul>{{end}}
  </details>
  <details>
    <summary>&#129534; Metadata</summary>
    <table border="1" cellpadding="4">
    {{range .Metadata}}<tr><td><strong>{{index . 0}}</strong></td><td>{{index . 1}}</td></tr>{{end}}
    </table>
  </details>
  <details>
    <summary>&#10067; Ask a question</summary>
    <input type="text" id="q-{{.DocID}}" size="60" placeholder="Ask about this document...">
    <button onclick="ask('{{.DocID}}')">Ask</button>
    <div id="a-{{.DocID}}"></div>
  </details>
{{end}}
{{end}}
<script>
async function ask(docID) {
  const q = document.getElementById('q-' + docID).value;
  const out = document.getElementById('a-' + docID);
  out.textContent = '...';
  const resp = await fetch('/ask', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({doc_id: docID, question: q})
  });
  if (!resp.ok) { out.textContent = 'Error: ' + await resp.text(); return; }
  const data = await resp.json();
  out.textContent = data.answer;
}
</script>
</body>
</html>
`))
