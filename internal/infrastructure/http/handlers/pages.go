package handlers

import (
	"net/http"
	"strings"
)

const indexPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>todo-api</title></head>
<body><h1>todo-api</h1><p>REST API for users, projects and todos.</p></body>
</html>
`

const notFoundPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>404 Not Found</title></head>
<body><h1>404 Not Found</h1><p>Sorry, the page you are looking for does not exist.</p></body>
</html>
`

// Index serves the landing page at /, /index and /index.html.
func Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(indexPage))
}

// NotFound answers unmatched routes in the format the client accepts,
// preferring HTML.
func NotFound(w http.ResponseWriter, r *http.Request) {
	switch accepted(r.Header.Get("Accept")) {
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(notFoundPage))
	case "json":
		writeErr(w, http.StatusNotFound, "404 Not Found")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("404 Not Found"))
	}
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeErr(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}

func accepted(accept string) string {
	if strings.TrimSpace(accept) == "" {
		return "html"
	}
	json := false
	for _, part := range strings.Split(accept, ",") {
		mt := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		switch mt {
		case "text/html", "text/*", "*/*":
			return "html"
		case "application/json", "application/*":
			json = true
		}
	}
	if json {
		return "json"
	}
	return "text"
}
