package commands

// Command usage pattern shown in help output.
const OptionsUsage = "[OPTIONS]"

// shimMarker identifies hook scripts written by this tool; uninstall only
// removes files carrying it.
const shimMarker = "preco-piispis-1"

// hooksToInstall lists the git hooks `install` writes shims for.
var hooksToInstall = []string{"pre-commit"}
