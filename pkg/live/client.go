package live

import (
	"encoding/json"
	"strings"
)

// ClientScript returns the browser side of the protocol. It is injected
// into the application shell and expects an element with id "app". Links
// equal to or under a passthrough prefix (API proxies, internal endpoints)
// are left to the browser instead of becoming navigate frames.
func ClientScript(passthrough ...string) string {
	if passthrough == nil {
		passthrough = []string{}
	}
	// Marshal escapes <, > and &, so the list is safe inside <script>.
	data, _ := json.Marshal(passthrough)
	return strings.Replace(clientScript, passthroughPlaceholder, string(data), 1)
}

const passthroughPlaceholder = "[/*passthrough*/]"

const clientScript = `
<script>
(function() {
    'use strict';

    var passthrough = [/*passthrough*/];
    var ws = null;
    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;

    function send(msg) {
        if (ws && ws.readyState === WebSocket.OPEN) {
            ws.send(JSON.stringify(msg));
        }
    }

    function render(msg) {
        var app = document.getElementById('app');
        if (!app) {
            return;
        }
        app.setAttribute('data-route', msg.route || '');
        var c = msg.content;
        if (c && typeof c === 'object' && c.html) {
            app.innerHTML = c.html;
        } else if (typeof c === 'string') {
            app.textContent = c;
        } else {
            var pre = document.createElement('pre');
            pre.textContent = JSON.stringify(c, null, 2);
            app.replaceChildren(pre);
        }
        if (c && c.title) {
            document.title = c.title;
        }
    }

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + '/_nav');

        ws.onopen = function() {
            reconnectDelay = 1000;
            send({type: 'hello', path: location.pathname + location.search});
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            switch (msg.type) {
                case 'push':
                    history.pushState(null, '', msg.path);
                    break;
                case 'replace':
                    history.replaceState(null, '', msg.path);
                    break;
                case 'render':
                    render(msg);
                    break;
                case 'error':
                    console.error('[toolbox]', msg.error);
                    break;
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    window.addEventListener('popstate', function() {
        send({type: 'popstate', path: location.pathname + location.search});
    });

    function passesThrough(href) {
        for (var i = 0; i < passthrough.length; i++) {
            var p = passthrough[i];
            if (href === p || href.indexOf(p + '/') === 0 || href.indexOf(p + '?') === 0) {
                return true;
            }
        }
        return false;
    }

    document.addEventListener('click', function(e) {
        var a = e.target.closest && e.target.closest('a[href]');
        if (!a || a.target || e.metaKey || e.ctrlKey || e.shiftKey) {
            return;
        }
        var href = a.getAttribute('href');
        if (href.charAt(0) !== '/' || href.charAt(1) === '/' || passesThrough(href)) {
            return;
        }
        e.preventDefault();
        send({type: 'navigate', path: href});
    });

    if (document.readyState === 'loading') {
        document.addEventListener('DOMContentLoaded', connect);
    } else {
        connect();
    }
})();
</script>
`
