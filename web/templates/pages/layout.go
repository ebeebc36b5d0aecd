package pages

import (
	"fmt"

	"github.com/a-h/templ"
)

// layout wraps page body markup in the shared document shell. Pages are
// intentionally plain; the decorative animation layers of the site are
// presentation detail and live outside this server.
func layout(title, body string) templ.Component {
	return templ.Raw(fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <link href="/static/css/site.css" rel="stylesheet">
</head>
<body>
    <nav class="site-nav">
        <a href="/">Meditation Mondays</a>
        <a href="/classes">Classes</a>
        <a href="/movement">Movement</a>
        <a href="/tickets">Tickets</a>
    </nav>
    <main>
%s
    </main>
    <footer class="site-footer">
        <p>Meditation Mondays &middot; every Monday evening &middot; doors at 6:30pm</p>
    </footer>
</body>
</html>`, title, body))
}
