package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_stackvault() {
    local cur prev words cword
    _init_completion || return

    local commands="status unlock passphrase add rm undo ls persist import export diff spot end-session clear help completion"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        add)
            COMPREPLY=($(compgen -W "-desc -weight -date -price -modifier" -- "$cur"))
            ;;
        persist)
            COMPREPLY=($(compgen -W "--durable --volatile" -- "$cur"))
            ;;
        clear)
            COMPREPLY=($(compgen -W "--force" -- "$cur"))
            ;;
        import|export|diff)
            _filedir csv
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}
complete -F _stackvault stackvault
`

const zshCompletion = `#compdef stackvault

_stackvault() {
    local -a commands
    commands=(
        'status:Show vault state and protection details'
        'unlock:Decrypt the stored inventory'
        'passphrase:Set, rotate, or remove the passphrase'
        'add:Add one inventory item'
        'rm:Remove an item by position'
        'undo:Restore the most recently removed item'
        'ls:List items with melt values and analytics'
        'persist:Choose volatile or durable storage'
        'import:Replace the inventory from a CSV file'
        'export:Write the inventory to a CSV file'
        'diff:Compare the inventory with a CSV file'
        'spot:Show the silver spot price'
        'end-session:Clear session-scoped storage and keys'
        'clear:Delete all stored data'
        'completion:Generate shell completions'
        'help:Show help'
    )

    if (( CURRENT == 2 )); then
        _describe 'command' commands
        return
    fi

    case "${words[2]}" in
        import|export|diff)
            _files -g '*.csv'
            ;;
        persist)
            _values 'mode' '--durable' '--volatile'
            ;;
        completion)
            _values 'shell' 'bash' 'zsh' 'fish'
            ;;
    esac
}

_stackvault "$@"
`

const fishCompletion = `complete -c stackvault -f

complete -c stackvault -n '__fish_use_subcommand' -a status -d 'Show vault state and protection details'
complete -c stackvault -n '__fish_use_subcommand' -a unlock -d 'Decrypt the stored inventory'
complete -c stackvault -n '__fish_use_subcommand' -a passphrase -d 'Set, rotate, or remove the passphrase'
complete -c stackvault -n '__fish_use_subcommand' -a add -d 'Add one inventory item'
complete -c stackvault -n '__fish_use_subcommand' -a rm -d 'Remove an item by position'
complete -c stackvault -n '__fish_use_subcommand' -a undo -d 'Restore the most recently removed item'
complete -c stackvault -n '__fish_use_subcommand' -a ls -d 'List items with melt values and analytics'
complete -c stackvault -n '__fish_use_subcommand' -a persist -d 'Choose volatile or durable storage'
complete -c stackvault -n '__fish_use_subcommand' -a import -d 'Replace the inventory from a CSV file'
complete -c stackvault -n '__fish_use_subcommand' -a export -d 'Write the inventory to a CSV file'
complete -c stackvault -n '__fish_use_subcommand' -a diff -d 'Compare the inventory with a CSV file'
complete -c stackvault -n '__fish_use_subcommand' -a spot -d 'Show the silver spot price'
complete -c stackvault -n '__fish_use_subcommand' -a end-session -d 'Clear session-scoped storage and keys'
complete -c stackvault -n '__fish_use_subcommand' -a clear -d 'Delete all stored data'
complete -c stackvault -n '__fish_use_subcommand' -a completion -d 'Generate shell completions'

complete -c stackvault -n '__fish_seen_subcommand_from import export diff' -k -a '(__fish_complete_suffix .csv)'
complete -c stackvault -n '__fish_seen_subcommand_from persist' -a '--durable --volatile'
complete -c stackvault -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'
`
