package server

import "net/http"

const indexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width,initial-scale=1" />
  <title>Zip to IPA Converter</title>
  <style>
    body { font-family: -apple-system, "Segoe UI", sans-serif; background: #f5f5f5; }
    .card { max-width: 640px; margin: 50px auto; background: #fff; border-radius: 8px; padding: 30px; }
    button { background: #007AFF; color: #fff; border: 0; border-radius: 6px; padding: 10px 24px; }
  </style>
</head>
<body>
  <div class="card">
    <h1>Zip to IPA Converter</h1>
    <p>Upload a ZIP archive of an Xcode project to receive a copy with the .ipa extension.</p>
    <form action="/convert" method="post" enctype="multipart/form-data">
      <input type="file" name="file" accept=".zip" required />
      <button type="submit">Convert to IPA</button>
    </form>
  </div>
</body>
</html>
`

func handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}
