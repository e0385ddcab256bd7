package health

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
)

// RenderDashboardHTML returns the status page for GET /: overall status,
// traffic counters and dependency pings, with the raw JSON embedded for
// anyone poking at it from a terminal.
func RenderDashboardHTML(result CollectResult) string {
	raw, _ := json.MarshalIndent(result, "", "  ")

	var deps strings.Builder
	for name, dep := range result.Dependencies {
		ping := "-"
		if dep.PingMs != nil {
			ping = fmt.Sprintf("%d ms", *dep.PingMs)
		}
		deps.WriteString(fmt.Sprintf(
			`<tr><td>%s</td><td class="s-%s">%s</td><td>%s</td></tr>`,
			html.EscapeString(name), html.EscapeString(dep.Status), html.EscapeString(dep.Status), ping))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>folio-api · status</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>
    body { font-family: ui-monospace, SFMono-Regular, Menlo, monospace; background: #0f172a; color: #e2e8f0; margin: 2rem auto; max-width: 720px; padding: 0 1rem; }
    h1 { font-size: 1.1rem; }
    .badge { display: inline-block; padding: 0.15rem 0.6rem; border-radius: 999px; font-weight: 700; }
    .ok { background: #14532d; color: #86efac; }
    .issue { background: #7f1d1d; color: #fca5a5; }
    table { width: 100%%; border-collapse: collapse; margin: 1rem 0; }
    td, th { text-align: left; padding: 0.35rem 0.5rem; border-bottom: 1px solid #1e293b; }
    .s-connected, .s-reachable { color: #86efac; }
    .s-error, .s-unreachable { color: #fca5a5; }
    .s-disconnected { color: #94a3b8; }
    pre { background: #1e293b; padding: 1rem; border-radius: 8px; overflow-x: auto; font-size: 0.8rem; }
  </style>
</head>
<body>
  <h1>folio-api <span class="badge %s">%s</span></h1>
  <table>
    <tr><th>requests</th><td>%d</td><th>errors</th><td>%d</td><th>success</th><td>%s%%</td></tr>
  </table>
  <table>
    <tr><th>dependency</th><th>status</th><th>ping</th></tr>
    %s
  </table>
  <pre>%s</pre>
</body>
</html>`,
		result.Status, result.Status,
		result.Traffic.TotalRequests, result.Traffic.FailedCount, result.Traffic.SuccessRate,
		deps.String(), html.EscapeString(string(raw)))
}
