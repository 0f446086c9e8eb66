package help

const ColdstartYAML = `# sachai Quick Start

deployments:
  popup: "Selection hand-off; posts {\"answer\": text} to popup.endpoint (default http://127.0.0.1:8000/fact-check)"
  page: "Companion page; posts {\"text\": text} to page.endpoint (default http://127.0.0.1:5000/fact-check)"

commands:
  check_text: |
    sachai check "The Earth is flat."

  check_page_endpoint: |
    sachai check --field text "The Earth is flat."

  check_url: |
    sachai check --url "https://example.com/article"

  select_then_popup: |
    sachai select "The Earth is flat."
    sachai popup --out popup.html

  serve: |
    sachai serve --addr 127.0.0.1:8080

  history: |
    sachai history --limit 10

routes:
  "GET /": "Fact-check form"
  "POST /check": "Submit form text; redirects to the stored report"
  "GET /reports/:id?open=0,2": "Stored report with claims 0 and 2 expanded"
  "POST /api/fact-check": "JSON relay ({\"text\"} or {\"answer\"})"
  "POST /selection": "Store {\"selectedText\"}; redirects to /popup"
  "GET /popup": "Auto-submit the pending selection once"

config_keys:
  - "popup.endpoint, popup.field"
  - "page.endpoint, page.field"
  - "client.timeout (0 = none)"
  - "server.addr"
  - "selection.backend (memory|file|redis), selection.path, selection.redis_url, selection.ttl"
  - "history.path (default: sachai.db next to the binary)"
  - "log.level (debug|info|warn|error)"

selection_invariants:
  - "One pending selection at a time; a new one replaces the old"
  - "Taking the selection clears it, so a reload does not resubmit"
  - "The CLI uses the file backend when memory is configured"

error_behavior:
  - "Blank input: validation message, no request"
  - "Non-2xx or {\"error\": ...}: popup shows it inline, page shows an alert"
  - "Exit codes: 0=success, 1=check failed, 2=bad config or flags"
`
