package main

import (
	_ "embed"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/tomz197/hitbox/internal/config"
	"github.com/tomz197/hitbox/internal/logx"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	logger, closer, err := logx.FromEnv("web", os.Stderr)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer closer.Close()

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnv("SSH_PORT", "2222")

	http.Handle("/", pageHandler(sshHost, sshPort))

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Error("server error", "err", err)
		closer.Close()
		os.Exit(1)
	}
}

// pageHandler serves the landing page with the SSH command filled in.
func pageHandler(sshHost, sshPort string) http.Handler {
	page := strings.NewReplacer("{{.SSHHost}}", sshHost, "{{.SSHPort}}", sshPort).Replace(htmlPage)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	})
}
