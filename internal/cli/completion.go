package cli

import (
	"fmt"
)

// CompletionCmd generates shell completions
type CompletionCmd struct {
	Shell string `arg:"" enum:"bash,zsh,fish" help:"Shell type (bash, zsh, fish)"`
}

// Run executes the completion command
func (c *CompletionCmd) Run(globals *Globals) error {
	switch c.Shell {
	case "bash":
		return c.generateBash(globals)
	case "zsh":
		return c.generateZsh(globals)
	case "fish":
		return c.generateFish(globals)
	default:
		return fmt.Errorf("unsupported shell: %s", c.Shell)
	}
}

func (c *CompletionCmd) generateBash(globals *Globals) error {
	script := `# runios bash completion script
# Add to ~/.bashrc or ~/.bash_profile:
#   eval "$(runios completion bash)"

_runios_completions() {
    local cur prev words cword
    _init_completion || return

    local commands="run list pick status doctor config version update completion"
    local global_flags="-f --format -q --quiet -v --verbose"

    case "${prev}" in
        runios)
            COMPREPLY=($(compgen -W "${commands} ${global_flags}" -- "${cur}"))
            return
            ;;
        -f|--format)
            COMPREPLY=($(compgen -W "ndjson text" -- "${cur}"))
            return
            ;;
        --boot-with)
            COMPREPLY=($(compgen -W "instruments simctl" -- "${cur}"))
            return
            ;;
        --device-list)
            COMPREPLY=($(compgen -W "text json" -- "${cur}"))
            return
            ;;
        --plist-reader)
            COMPREPLY=($(compgen -W "auto plistbuddy native" -- "${cur}"))
            return
            ;;
        --configuration)
            COMPREPLY=($(compgen -W "Debug Release" -- "${cur}"))
            return
            ;;
        -s|--simulator)
            local IFS=$'\n'
            local sims=$(xcrun simctl list devices available -j 2>/dev/null | grep '"name"' | cut -d'"' -f4 | sort -u)
            COMPREPLY=($(compgen -W "${sims}" -- "${cur}"))
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "${cur}"))
            return
            ;;
        config)
            COMPREPLY=($(compgen -W "show path generate" -- "${cur}"))
            return
            ;;
    esac

    case "${words[1]}" in
        run)
            COMPREPLY=($(compgen -W "-s --simulator --udid --scheme --root --project-path --configuration --port --terminal --no-packager --wait-packager --boot-with --device-list --plist-reader --pick ${global_flags}" -- "${cur}"))
            ;;
        list)
            COMPREPLY=($(compgen -W "-b --booted-only --platform --device-list ${global_flags}" -- "${cur}"))
            ;;
        pick)
            COMPREPLY=($(compgen -W "-b --booted-only --device-list ${global_flags}" -- "${cur}"))
            ;;
        status)
            COMPREPLY=($(compgen -W "--port --wait ${global_flags}" -- "${cur}"))
            ;;
        doctor)
            COMPREPLY=($(compgen -W "--root --project-path ${global_flags}" -- "${cur}"))
            ;;
        *)
            COMPREPLY=($(compgen -W "${commands} ${global_flags}" -- "${cur}"))
            ;;
    esac
}

complete -F _runios_completions runios
`
	_, err := fmt.Fprint(globals.Stdout, script)
	return err
}

func (c *CompletionCmd) generateZsh(globals *Globals) error {
	script := `#compdef runios
# runios zsh completion script
# Add to ~/.zshrc:
#   eval "$(runios completion zsh)"

_runios() {
    local -a commands
    commands=(
        'run:Build the app and run it on a simulator'
        'list:List available simulators'
        'pick:Interactively pick a simulator'
        'status:Show whether the packager is running'
        'doctor:Check system requirements and configuration'
        'config:Show or manage configuration'
        'version:Show version information'
        'update:Show how to upgrade runios'
        'completion:Generate shell completions'
    )

    local -a global_opts
    global_opts=(
        '-f[Output format]:format:(ndjson text)'
        '--format[Output format]:format:(ndjson text)'
        '-q[Suppress progress output]'
        '--quiet[Suppress progress output]'
        '-v[Log every external command]'
        '--verbose[Log every external command]'
    )

    _arguments -C \
        $global_opts \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                run)
                    _arguments \
                        '-s[Simulator name]:simulator:->simulators' \
                        '--simulator[Simulator name]:simulator:->simulators' \
                        '--udid[Simulator UDID]:udid:' \
                        '--scheme[Xcode scheme]:scheme:' \
                        '--root[Project root]:dir:_files -/' \
                        '--project-path[iOS folder relative to root]:dir:_files -/' \
                        '--configuration[Build configuration]:configuration:(Debug Release)' \
                        '--port[Packager port]:port:' \
                        '--terminal[Terminal app]:app:' \
                        '--no-packager[Do not start the packager]' \
                        '--wait-packager[Wait for the packager]:duration:' \
                        '--boot-with[Boot strategy]:strategy:(instruments simctl)' \
                        '--device-list[Device list format]:format:(text json)' \
                        '--plist-reader[Bundle id reader]:reader:(auto plistbuddy native)' \
                        '--pick[Choose the simulator interactively]' \
                        $global_opts
                    ;;
                list)
                    _arguments \
                        '-b[Show only booted]' \
                        '--booted-only[Show only booted]' \
                        '--platform[Filter by platform]:platform:(iOS tvOS watchOS)' \
                        '--device-list[Device list format]:format:(text json)' \
                        $global_opts
                    ;;
                pick)
                    _arguments \
                        '-b[Offer only booted]' \
                        '--booted-only[Offer only booted]' \
                        '--device-list[Device list format]:format:(text json)' \
                        $global_opts
                    ;;
                status)
                    _arguments \
                        '--port[Packager port]:port:' \
                        '--wait[Poll until running]:duration:' \
                        $global_opts
                    ;;
                config)
                    _arguments '1:action:(show path generate)'
                    ;;
                completion)
                    _arguments '1:shell:(bash zsh fish)'
                    ;;
            esac

            case $state in
                simulators)
                    local -a sims
                    sims=(${(f)"$(xcrun simctl list devices available -j 2>/dev/null | grep '"name"' | cut -d'"' -f4 | sort -u)"})
                    _describe 'simulator' sims
                    ;;
            esac
            ;;
    esac
}

compdef _runios runios
`
	_, err := fmt.Fprint(globals.Stdout, script)
	return err
}

func (c *CompletionCmd) generateFish(globals *Globals) error {
	script := `# runios fish completion script
# Add to ~/.config/fish/completions/runios.fish

# Disable file completion by default
complete -c runios -f

# Commands
complete -c runios -n "__fish_use_subcommand" -a "run" -d "Build the app and run it on a simulator"
complete -c runios -n "__fish_use_subcommand" -a "list" -d "List available simulators"
complete -c runios -n "__fish_use_subcommand" -a "pick" -d "Interactively pick a simulator"
complete -c runios -n "__fish_use_subcommand" -a "status" -d "Show whether the packager is running"
complete -c runios -n "__fish_use_subcommand" -a "doctor" -d "Check system requirements and configuration"
complete -c runios -n "__fish_use_subcommand" -a "config" -d "Show or manage configuration"
complete -c runios -n "__fish_use_subcommand" -a "version" -d "Show version information"
complete -c runios -n "__fish_use_subcommand" -a "update" -d "Show how to upgrade runios"
complete -c runios -n "__fish_use_subcommand" -a "completion" -d "Generate shell completions"

# Global flags
complete -c runios -s f -l format -d "Output format" -xa "ndjson text"
complete -c runios -s q -l quiet -d "Suppress progress output"
complete -c runios -s v -l verbose -d "Log every external command"

# Run command
complete -c runios -n "__fish_seen_subcommand_from run" -s s -l simulator -d "Simulator name" -xa "(xcrun simctl list devices available -j 2>/dev/null | grep '\"name\"' | cut -d'\"' -f4 | sort -u)"
complete -c runios -n "__fish_seen_subcommand_from run" -l udid -d "Simulator UDID" -x
complete -c runios -n "__fish_seen_subcommand_from run" -l scheme -d "Xcode scheme" -x
complete -c runios -n "__fish_seen_subcommand_from run" -l root -d "Project root" -r
complete -c runios -n "__fish_seen_subcommand_from run" -l project-path -d "iOS folder relative to root" -r
complete -c runios -n "__fish_seen_subcommand_from run" -l configuration -d "Build configuration" -xa "Debug Release"
complete -c runios -n "__fish_seen_subcommand_from run" -l port -d "Packager port" -x
complete -c runios -n "__fish_seen_subcommand_from run" -l terminal -d "Terminal app" -x
complete -c runios -n "__fish_seen_subcommand_from run" -l no-packager -d "Do not start the packager"
complete -c runios -n "__fish_seen_subcommand_from run" -l wait-packager -d "Wait for the packager" -x
complete -c runios -n "__fish_seen_subcommand_from run" -l boot-with -d "Boot strategy" -xa "instruments simctl"
complete -c runios -n "__fish_seen_subcommand_from run" -l plist-reader -d "Bundle id reader" -xa "auto plistbuddy native"
complete -c runios -n "__fish_seen_subcommand_from run" -l pick -d "Choose the simulator interactively"

# List and pick commands
complete -c runios -n "__fish_seen_subcommand_from list pick" -s b -l booted-only -d "Show only booted"
complete -c runios -n "__fish_seen_subcommand_from list" -l platform -d "Filter by platform" -xa "iOS tvOS watchOS"
complete -c runios -n "__fish_seen_subcommand_from run list pick" -l device-list -d "Device list format" -xa "text json"

# Status command
complete -c runios -n "__fish_seen_subcommand_from status" -l port -d "Packager port" -x
complete -c runios -n "__fish_seen_subcommand_from status" -l wait -d "Poll until running" -x

# Config and completion commands
complete -c runios -n "__fish_seen_subcommand_from config" -a "show path generate"
complete -c runios -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
	_, err := fmt.Fprint(globals.Stdout, script)
	return err
}
