package report

const reportTemplate = `
      <html>
        <head>
          <meta charset="utf-8">
          <title>Playwright Performance Report</title>
          <style>
            body {
              font-family: 'Segoe UI', Roboto, Arial, sans-serif;
              background: #f4f6f8;
              color: #333;
              padding: 20px;
              margin: 0;
            }
            h1 {
              text-align: center;
              color: #0078ff;
              margin-bottom: 10px;
            }
            .description {
              max-width: 900px;
              margin: 0 auto 30px auto;
              background: #ffffff;
              padding: 15px 20px;
              border-radius: 10px;
              box-shadow: 0 2px 8px rgba(0,0,0,0.05);
              border-left: 5px solid #0078ff;
              font-size: 15px;
              line-height: 1.6;
            }
            .description strong { color: #0078ff; }
            .test-card {
              background: #fff;
              border-radius: 12px;
              box-shadow: 0 3px 8px rgba(0,0,0,0.08);
              margin-bottom: 30px;
              overflow: hidden;
              border: 1px solid #e0e0e0;
            }
            .test-header {
              background: linear-gradient(90deg, #0078ff, #00bfff);
              color: #fff;
              padding: 12px 20px;
              display: flex;
              justify-content: space-between;
              align-items: center;
              flex-wrap: wrap;
              font-size: 15px;
            }
            .test-header-left {
              display: flex;
              align-items: center;
              gap: 10px;
              font-weight: 500;
            }
            .test-index {
              background: rgba(255,255,255,0.2);
              padding: 3px 8px;
              border-radius: 6px;
              font-weight: bold;
              font-size: 13px;
            }
            .data-table {
              width: 100%;
              border-collapse: collapse;
            }
            .data-table th, .data-table td {
              border: 1px solid #ddd;
              padding: 8px;
              text-align: left;
              font-size: 13px;
            }
            .data-table th { background: #f0f6ff; position: sticky; top: 0; }
            .url-cell { max-width: 450px; overflow-wrap: anywhere; }
            .badge {
              padding: 3px 6px;
              border-radius: 4px;
              font-weight: 600;
              color: white;
              font-size: 12px;
            }
            .badge.get { background: #0078ff; }
            .badge.post { background: #00bfa5; }
            .badge.put { background: #ff9800; }
            .badge.delete { background: #e53935; }
            .status {
              padding: 3px 6px;
              border-radius: 4px;
              color: white;
              font-weight: 600;
              font-size: 12px;
            }
            .status.success { background: #4caf50; }
            .status.error { background: #f44336; }
            .status.warning { background: #ff9800; }
            .console-section {
              background: #f3f3f3;
              color: #333;
              padding: 10px 15px;
              margin: 15px;
              border-radius: 8px;
            }
            .console-section h4 { margin-top: 0; color: #0078ff; }
            .console-logs {
              font-family: monospace;
              font-size: 12px;
              background: #fafafa;
              padding: 10px;
              border-radius: 5px;
              overflow-x: auto;
              max-height: 200px;
            }
            .console-line {
              border-bottom: 1px solid #ddd;
              padding: 2px 0;
            }
            @media (prefers-color-scheme: dark) {
              body { background: #1e1e1e; color: #eee; }
              .test-card { background: #252526; border: 1px solid #333; }
              .data-table th { background: #2a2d2e; }
              .data-table td { border-color: #333; }
              .console-section { background: #2d2d2d; color: #ddd; }
              .console-logs { background: #1a1a1a; color: #ccc; }
            }
          </style>
        </head>
        <body>
          <h1>{{.Title}}</h1>

          <div class="description">
            <p>This performance report is automatically generated after running the browser tests.</p>
            <p>It gives a clear picture of how your web app performed during testing, in simple terms:</p>
            <ul>
              <li><strong>Test duration:</strong> how long each test took to finish.</li>
              <li><strong>Network requests:</strong> every API call your browser made, showing its method, size, and response time.</li>
              <li><strong>HTTP status codes:</strong> which requests succeeded, failed, or had warnings.</li>
              <li><strong>Console logs:</strong> any browser errors or warnings captured during test execution.</li>
            </ul>
            <p>Use this to identify slow resources, failed network calls, or issues affecting performance and user experience.</p>
          </div>
{{range .Cards}}
        <div class="test-card">
          <div class="test-header">
            <div class="test-header-left">
              <span class="test-index">#{{.Index}}</span>
              <span class="test-name">{{.Name}}</span>
            </div>
            <div class="test-header-right">
              <span class="test-duration">{{.Duration}}</span>
            </div>
          </div>
          <table class="data-table">
            <thead>
              <tr>
                <th>Method</th>
                <th>Type</th>
                <th>Status</th>
                <th>URL</th>
                <th>Size</th>
                <th>Duration</th>
              </tr>
            </thead>
            <tbody>
{{- range .Rows}}
            <tr>
              <td><span class="badge {{.MethodClass}}">{{.Method}}</span></td>
              <td>{{.Kind}}</td>
              <td><span class="status {{.StatusClass}}">{{.Status}}</span></td>
              <td class="url-cell">{{.URL}}</td>
              <td>{{.Size}}</td>
              <td>{{.Duration}}</td>
            </tr>
{{- end}}
            </tbody>
          </table>
{{- if .Console}}
        <div class="console-section">
          <h4>🧠 Console Logs</h4>
          <div class="console-logs">
            {{range .Console}}<div class="console-line">{{.}}</div>{{end}}
          </div>
        </div>
{{- end}}
        </div>
{{end}}
        </body>
      </html>
`
