package runner

import "strings"

// Tools that only ship for the WSL side on windows hosts.
var wslTools = []string{"dirb", "nikto", "gobuster", "ffuf", "sqlmap"}

// ShellArgs builds the argv used to run command on goos. Outside windows the
// command goes through sh. On windows, known WSL-only tools are routed through
// wsl bash; nmap runs natively when it is on PATH; everything else falls back
// to WSL as well.
func ShellArgs(goos, command string, lookPath func(string) (string, error)) []string {
	if goos != "windows" {
		return []string{"sh", "-c", command}
	}
	for _, tool := range wslTools {
		if strings.Contains(command, tool) {
			return wslArgs(command)
		}
	}
	if strings.Contains(command, "nmap") && lookPath != nil {
		if _, err := lookPath("nmap"); err == nil {
			return []string{"cmd", "/C", command}
		}
	}
	return wslArgs(command)
}

func wslArgs(command string) []string {
	return []string{"wsl", "bash", "-c", command}
}
