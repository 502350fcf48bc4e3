package pages

import "html/template"

const bootstrapCSS = `<link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.2/dist/css/bootstrap.min.css" rel="stylesheet">`

var landingTmpl = template.Must(template.New("landing").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8"><title>AI Data Workbench</title>
	` + bootstrapCSS + `
</head>
<body class="bg-light">
	<div class="container mt-5">
		<div class="card shadow-sm">
			<div class="card-body">
				<h1 class="card-title mb-4">AI Data Workbench</h1>
				<p class="card-text">Upload a CSV file to begin cleaning, analyzing, and chatting with your data.</p>
				<form action="/upload/" enctype="multipart/form-data" method="post" class="mt-4">
					<div class="mb-3">
						<input name="file" type="file" class="form-control" accept=".csv" required>
					</div>
					<button type="submit" class="btn btn-primary">Process File</button>
				</form>
			</div>
		</div>
	</div>
</body>
</html>
`))

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8"><title>Data Dashboard</title>
	` + bootstrapCSS + `
</head>
<body>
	<div class="container mt-5">
		<h1 class="text-center">Your Data is Ready</h1>
		<p class="text-center text-muted">{{.Filename}}: {{.Rows}} rows, {{.Cols}} columns. Choose an action below.</p>
		<div class="row mt-4 g-3">
			<div class="col-md-4">
				<div class="card h-100">
					<div class="card-body text-center">
						<h5 class="card-title">AI Visualization Report</h5>
						<p class="card-text">Let the AI generate the most insightful charts from your data.</p>
						<a href="/ai_visuals/{{.ID}}" class="btn btn-primary" target="_blank">Generate AI Visuals</a>
					</div>
				</div>
			</div>
			<div class="col-md-4">
				<div class="card h-100">
					<div class="card-body text-center">
						<h5 class="card-title">Detailed Statistical Profile</h5>
						<p class="card-text">Get a statistical report covering every column in your dataset.</p>
						<a href="/statistical_report/{{.ID}}" class="btn btn-secondary" target="_blank">Generate Stat Profile</a>
					</div>
				</div>
			</div>
			<div class="col-md-4">
				<div class="card h-100">
					<div class="card-body text-center">
						<h5 class="card-title">Chat with Your Data</h5>
						<p class="card-text">Ask questions about your data in plain English and get instant answers.</p>
						<a href="/chat/{{.ID}}" class="btn btn-info" target="_blank">Start Chat Session</a>
					</div>
				</div>
			</div>
		</div>
	</div>
</body>
</html>
`))

var chatTmpl = template.Must(template.New("chat").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8"><title>Chat</title>
	` + bootstrapCSS + `
</head>
<body>
	<div class="container mt-4">
		<h2>Chat with your AI Data Analyst</h2>
		<div id="chat-box" class="border p-3 rounded" style="height: 400px; overflow-y: scroll;"></div>
		<form id="chat-form" class="mt-3">
			<div class="input-group">
				<input type="text" id="question" class="form-control" placeholder="e.g., How many rows are there?" required>
				<button class="btn btn-primary" type="submit">Send</button>
			</div>
		</form>
	</div>
	<script>
	const chatForm = document.getElementById('chat-form'), chatBox = document.getElementById('chat-box'), qInput = document.getElementById('question');
	chatForm.addEventListener('submit', async (e) => {
		e.preventDefault(); const q = qInput.value; if (!q) return;
		chatBox.innerHTML += '<p><b>You:</b> ' + q + '</p>'; qInput.value = '';
		const response = await fetch(window.location.pathname.replace('/chat/', '/ask/'), {
			method: 'POST', headers: {'Content-Type': 'application/json'}, body: JSON.stringify({question: q})
		});
		const data = await response.json();
		chatBox.innerHTML += '<p><b>AI:</b><br>' + data.answer.replace(/\n/g, '<br>') + '</p>';
		chatBox.scrollTop = chatBox.scrollHeight;
	});
	</script>
</body>
</html>
`))

var errorTmpl = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8"><title>{{.Title}}</title>
	` + bootstrapCSS + `
</head>
<body class="bg-light">
	<div class="container mt-5">
		<h1>{{.Title}}</h1>
		{{if .Detail}}<pre class="border rounded p-3 bg-white">{{.Detail}}</pre>{{end}}
		<a href="/" class="btn btn-primary mt-3">Back to upload</a>
	</div>
</body>
</html>
`))
