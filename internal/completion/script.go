package completion

import (
	"fmt"
	"strings"
)

// Bash returns a bash completion script for the given program name.
func Bash(program string) string {
	flags := GetFlags()
	commands := GetCommands()
	fn := "_" + strings.ReplaceAll(program, "-", "_")

	var flagWords []string
	for _, f := range flags {
		flagWords = append(flagWords, "--"+f.Name)
	}
	var commandWords []string
	for _, c := range commands {
		commandWords = append(commandWords, c.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# bash completion for %s\n", program)
	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")

	b.WriteString("    case \"$prev\" in\n")
	for _, f := range flags {
		if !f.HasValue {
			continue
		}
		switch {
		case len(f.Values) > 0:
			fmt.Fprintf(&b, "    --%s)\n", f.Name)
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(f.Values, " "))
			b.WriteString("        return\n        ;;\n")
		case f.ValueHint == "FILE" || f.ValueHint == "PATH":
			fmt.Fprintf(&b, "    --%s)\n", f.Name)
			b.WriteString("        COMPREPLY=($(compgen -f -- \"$cur\"))\n")
			b.WriteString("        return\n        ;;\n")
		default:
			fmt.Fprintf(&b, "    --%s)\n", f.Name)
			b.WriteString("        return\n        ;;\n")
		}
	}
	b.WriteString("    esac\n\n")

	b.WriteString("    local cmd=\"\" i\n")
	b.WriteString("    for ((i = 1; i < COMP_CWORD; i++)); do\n")
	b.WriteString("        case \"${COMP_WORDS[i]}\" in\n")
	b.WriteString("        -*) ;;\n")
	b.WriteString("        *)\n")
	b.WriteString("            cmd=\"${COMP_WORDS[i]}\"\n")
	b.WriteString("            break\n")
	b.WriteString("            ;;\n")
	b.WriteString("        esac\n")
	b.WriteString("    done\n\n")

	b.WriteString("    case \"$cmd\" in\n")
	b.WriteString("    \"\")\n")
	b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
	fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(flagWords, " "))
	b.WriteString("        else\n")
	fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(commandWords, " "))
	b.WriteString("        fi\n        ;;\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		writeBashCommandBody(&b, c)
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "complete -F %s %s\n", fn, program)
	return b.String()
}

func writeBashCommandBody(b *strings.Builder, c CommandInfo) {
	var flagWords []string
	for _, f := range c.Flags {
		flagWords = append(flagWords, "--"+f.Name)
	}

	switch {
	case len(c.Flags) > 0 && c.TakesPaths:
		b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
		fmt.Fprintf(b, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(flagWords, " "))
		b.WriteString("        else\n")
		b.WriteString("            COMPREPLY=($(compgen -f -- \"$cur\"))\n")
		b.WriteString("        fi\n")
	case c.TakesPaths:
		b.WriteString("        COMPREPLY=($(compgen -f -- \"$cur\"))\n")
	case len(c.Args) > 0:
		fmt.Fprintf(b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(c.Args, " "))
	default:
		b.WriteString("        COMPREPLY=()\n")
	}
}

// Zsh returns a zsh completion script for the given program name.
func Zsh(program string) string {
	flags := GetFlags()
	commands := GetCommands()
	fn := "_" + strings.ReplaceAll(program, "-", "_")

	var b strings.Builder
	fmt.Fprintf(&b, "#compdef %s\n\n", program)
	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString("    local curcontext=\"$curcontext\" state line\n")
	b.WriteString("    typeset -A opt_args\n\n")

	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, c.Description)
	}
	b.WriteString("    )\n\n")

	b.WriteString("    _arguments -C \\\n")
	for _, f := range flags {
		fmt.Fprintf(&b, "        %s \\\n", zshFlagSpec(f))
	}
	b.WriteString("        '1:command:->cmds' \\\n")
	b.WriteString("        '*::arg:->args'\n\n")

	b.WriteString("    case \"$state\" in\n")
	b.WriteString("    cmds)\n")
	b.WriteString("        _describe -t commands 'command' commands\n")
	b.WriteString("        ;;\n")
	b.WriteString("    args)\n")
	b.WriteString("        case \"$line[1]\" in\n")
	for _, c := range commands {
		body := zshCommandBody(c)
		if body == "" {
			continue
		}
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString(body)
		b.WriteString("            ;;\n")
	}
	b.WriteString("        esac\n")
	b.WriteString("        ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "%s \"$@\"\n", fn)
	return b.String()
}

func zshFlagSpec(f FlagInfo) string {
	spec := fmt.Sprintf("'--%s[%s]", f.Name, f.Description)
	if f.HasValue {
		spec += ":" + f.ValueHint + ":"
		switch {
		case len(f.Values) > 0:
			spec += "(" + strings.Join(f.Values, " ") + ")"
		case f.ValueHint == "FILE" || f.ValueHint == "PATH":
			spec += "_files"
		}
	}
	return spec + "'"
}

func zshCommandBody(c CommandInfo) string {
	var b strings.Builder
	switch {
	case len(c.Flags) > 0:
		b.WriteString("            _arguments \\\n")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "                %s \\\n", zshFlagSpec(f))
		}
		if c.TakesPaths {
			b.WriteString("                '*:file:_files'\n")
		} else {
			b.WriteString("                '*::arg:'\n")
		}
	case c.TakesPaths:
		b.WriteString("            _files\n")
	case len(c.Args) > 0:
		fmt.Fprintf(&b, "            _values 'argument' %s\n", strings.Join(c.Args, " "))
	default:
		return ""
	}
	return b.String()
}
