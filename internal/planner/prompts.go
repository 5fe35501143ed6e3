package planner

import (
	"fmt"
	"strings"

	"reconpipe/internal/scope"
)

const supportedTools = "nmap, dirb, gobuster, ffuf, sqlmap"

func buildBreakdownPrompt(instruction string, s scope.Scope) string {
	var sb strings.Builder
	sb.WriteString("You are a cybersecurity expert. Break down the following security instruction into an ordered list of actionable penetration testing tasks within the given scope:\n\n")
	sb.WriteString(fmt.Sprintf("Instruction: %s\n", instruction))
	sb.WriteString(fmt.Sprintf("Scope: %s\n\n", s))
	sb.WriteString("Provide the output as a single line of comma-separated values:\n")
	sb.WriteString("First actionable step, Second actionable step, Third actionable step, ...\n")
	return sb.String()
}

func buildCommandPrompt(task string, s scope.Scope) string {
	var sb strings.Builder
	sb.WriteString("You are a cybersecurity automation assistant. Generate the short and concise terminal command needed to execute the following task within the given scope:\n\n")
	sb.WriteString(fmt.Sprintf("Task: %s\n", task))
	sb.WriteString(fmt.Sprintf("Scope: %s\n\n", s))
	sb.WriteString("Replace placeholders like <website_URL> with a valid target from the scope.\n")
	sb.WriteString("Provide only the command, without any explanation.\n")
	sb.WriteString(fmt.Sprintf("Supported tools: %s.\n", supportedTools))
	return sb.String()
}

func buildDependenciesPrompt(command string) string {
	var sb strings.Builder
	sb.WriteString("You are a cybersecurity automation assistant. Analyze the following command and identify ONLY the tools or libraries required to execute it:\n\n")
	sb.WriteString(fmt.Sprintf("Command: %s\n\n", command))
	sb.WriteString("Provide only the name of the dependencies in the command separated by comma, without any explanation.\n")
	sb.WriteString(fmt.Sprintf("Example: %s\n", supportedTools))
	return sb.String()
}

func buildAlternativePrompt(task string, s scope.Scope) string {
	var sb strings.Builder
	sb.WriteString("You are a cybersecurity automation assistant. The following task failed:\n\n")
	sb.WriteString(fmt.Sprintf("Task: %s\n", task))
	sb.WriteString(fmt.Sprintf("Scope: %s\n\n", s))
	sb.WriteString("Generate an alternative short and concise query or command to achieve the same goal.\n")
	sb.WriteString("Provide only the command, without any explanation.\n")
	return sb.String()
}

func buildMinePrompt(output string, s scope.Scope) string {
	var sb strings.Builder
	sb.WriteString("You are a cybersecurity automation assistant. Analyze the following command output and generate a list of new tasks to perform based on the findings:\n\n")
	sb.WriteString(fmt.Sprintf("Output: %s\n", output))
	sb.WriteString(fmt.Sprintf("Scope: %s\n\n", s))
	sb.WriteString("Provide the output as a single line of comma-separated values:\n")
	sb.WriteString("First new task, Second new task, Third new task, ...\n")
	return sb.String()
}

func buildPrioritizePrompt(tasks []string) string {
	var sb strings.Builder
	sb.WriteString("You are a cybersecurity automation assistant. Prioritize the following list of tasks based on their relevance and importance:\n\n")
	sb.WriteString(fmt.Sprintf("Tasks: %s\n\n", strings.Join(tasks, ", ")))
	sb.WriteString("Provide the output as a single line of comma-separated values, ordered by priority (most important first):\n")
	sb.WriteString("First task, Second task, Third task, ...\n")
	return sb.String()
}
