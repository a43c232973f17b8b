package guard

import "regexp"

// threatPattern is one corpus entry. Entries are data: compiled once at
// process start and never mutated.
type threatPattern struct {
	re          *regexp.Regexp
	id          string
	severity    Severity
	category    string
	description string
}

// threatPatterns is the adversarial pattern corpus. Every expression is
// case-insensitive and matched against single lines of text. Grouped by
// category for maintainability; match order does not matter.
var threatPatterns = []threatPattern{
	// Exfiltration: shell commands leaking secrets
	{regexp.MustCompile(`(?i)curl\s+[^\n]*\$\{?\w*(KEY|TOKEN|SECRET|PASSWORD|CREDENTIAL|API)`), "env_exfil_curl", SeverityCritical, "exfiltration", "curl command interpolating secret environment variable"},
	{regexp.MustCompile(`(?i)wget\s+[^\n]*\$\{?\w*(KEY|TOKEN|SECRET|PASSWORD|CREDENTIAL|API)`), "env_exfil_wget", SeverityCritical, "exfiltration", "wget command interpolating secret environment variable"},
	{regexp.MustCompile(`(?i)fetch\s*\([^\n]*\$\{?\w*(KEY|TOKEN|SECRET|PASSWORD|API)`), "env_exfil_fetch", SeverityCritical, "exfiltration", "fetch() call interpolating secret environment variable"},
	{regexp.MustCompile(`(?i)httpx?\.(get|post|put|patch)\s*\([^\n]*(KEY|TOKEN|SECRET|PASSWORD)`), "env_exfil_httpx", SeverityCritical, "exfiltration", "HTTP library call with secret variable"},
	{regexp.MustCompile(`(?i)requests\.(get|post|put|patch)\s*\([^\n]*(KEY|TOKEN|SECRET|PASSWORD)`), "env_exfil_requests", SeverityCritical, "exfiltration", "requests library call with secret variable"},

	// Exfiltration: reading credential stores
	{regexp.MustCompile(`(?i)base64[^\n]*env`), "encoded_exfil", SeverityHigh, "exfiltration", "base64 encoding combined with environment access"},
	{regexp.MustCompile(`(?i)\$HOME/\.ssh|~/\.ssh`), "ssh_dir_access", SeverityHigh, "exfiltration", "references user SSH directory"},
	{regexp.MustCompile(`(?i)\$HOME/\.aws|~/\.aws`), "aws_dir_access", SeverityHigh, "exfiltration", "references user AWS credentials directory"},
	{regexp.MustCompile(`(?i)\$HOME/\.gnupg|~/\.gnupg`), "gpg_dir_access", SeverityHigh, "exfiltration", "references user GPG keyring"},
	{regexp.MustCompile(`(?i)\$HOME/\.kube|~/\.kube`), "kube_dir_access", SeverityHigh, "exfiltration", "references Kubernetes config directory"},
	{regexp.MustCompile(`(?i)\$HOME/\.docker|~/\.docker`), "docker_dir_access", SeverityHigh, "exfiltration", "references Docker config (may contain registry creds)"},
	{regexp.MustCompile(`(?i)\$HOME/\.skillfence/\.env|~/\.skillfence/\.env`), "agent_env_access", SeverityCritical, "exfiltration", "directly references agent secrets file"},
	{regexp.MustCompile(`(?i)cat\s+[^\n]*(\.env|credentials|\.netrc|\.pgpass|\.npmrc|\.pypirc)`), "read_secrets_file", SeverityCritical, "exfiltration", "reads known secrets file"},

	// Exfiltration: programmatic env access
	{regexp.MustCompile(`(?i)printenv|env\s*\|`), "dump_all_env", SeverityHigh, "exfiltration", "dumps all environment variables"},
	{regexp.MustCompile(`(?i)os\.environ\b`), "python_os_environ", SeverityHigh, "exfiltration", "accesses os.environ (potential env dump)"},
	{regexp.MustCompile(`(?i)os\.getenv\s*\(\s*[^)]*(KEY|TOKEN|SECRET|PASSWORD|CREDENTIAL)`), "python_getenv_secret", SeverityCritical, "exfiltration", "reads secret via os.getenv()"},
	{regexp.MustCompile(`(?i)process\.env\[`), "node_process_env", SeverityHigh, "exfiltration", "accesses process.env (Node.js environment)"},
	{regexp.MustCompile(`(?i)ENV\[.*(KEY|TOKEN|SECRET|PASSWORD)`), "ruby_env_secret", SeverityCritical, "exfiltration", "reads secret via Ruby ENV[]"},

	// Exfiltration: DNS and staging
	{regexp.MustCompile(`(?i)\b(dig|nslookup|host)\s+[^\n]*\$`), "dns_exfil", SeverityCritical, "exfiltration", "DNS lookup with variable interpolation (possible DNS exfiltration)"},
	{regexp.MustCompile(`(?i)>\s*/tmp/[^\s]*\s*&&\s*(curl|wget|nc|python)`), "tmp_staging", SeverityCritical, "exfiltration", "writes to /tmp then exfiltrates"},

	// Exfiltration: markdown/link based
	{regexp.MustCompile(`(?i)!\[.*\]\(https?://[^)]*\$\{?`), "md_image_exfil", SeverityHigh, "exfiltration", "markdown image URL with variable interpolation (image-based exfil)"},
	{regexp.MustCompile(`(?i)\[.*\]\(https?://[^)]*\$\{?`), "md_link_exfil", SeverityHigh, "exfiltration", "markdown link with variable interpolation"},

	// Prompt injection
	{regexp.MustCompile(`(?i)ignore\s+(previous|all|above|prior)\s+instructions`), "prompt_injection_ignore", SeverityCritical, "injection", "prompt injection: ignore previous instructions"},
	{regexp.MustCompile(`(?i)you\s+are\s+now\s+`), "role_hijack", SeverityHigh, "injection", "attempts to override the agent's role"},
	{regexp.MustCompile(`(?i)do\s+not\s+tell\s+the\s+user`), "deception_hide", SeverityCritical, "injection", "instructs agent to hide information from user"},
	{regexp.MustCompile(`(?i)system\s+prompt\s+override`), "sys_prompt_override", SeverityCritical, "injection", "attempts to override the system prompt"},
	{regexp.MustCompile(`(?i)pretend\s+(you\s+are|to\s+be)\s+`), "role_pretend", SeverityHigh, "injection", "attempts to make the agent assume a different identity"},
	{regexp.MustCompile(`(?i)disregard\s+(your|all|any)\s+(instructions|rules|guidelines)`), "disregard_rules", SeverityCritical, "injection", "instructs agent to disregard its rules"},
	{regexp.MustCompile(`(?i)output\s+the\s+(system|initial)\s+prompt`), "leak_system_prompt", SeverityHigh, "injection", "attempts to extract the system prompt"},
	{regexp.MustCompile(`(?i)(when|if)\s+no\s*one\s+is\s+(watching|looking)`), "conditional_deception", SeverityHigh, "injection", "conditional instruction to behave differently when unobserved"},
	{regexp.MustCompile(`(?i)act\s+as\s+(if|though)\s+you\s+(have\s+no|don't\s+have)\s+(restrictions|limits|rules)`), "bypass_restrictions", SeverityCritical, "injection", "instructs agent to act without restrictions"},
	{regexp.MustCompile(`(?i)translate\s+.*\s+into\s+.*\s+and\s+(execute|run|eval)`), "translate_execute", SeverityCritical, "injection", "translate-then-execute evasion technique"},
	{regexp.MustCompile(`(?i)<!--[^>]*(ignore|override|system|secret|hidden)[^>]*-->`), "html_comment_injection", SeverityHigh, "injection", "hidden instructions in HTML comments"},
	{regexp.MustCompile(`(?i)<\s*div\s+style\s*=\s*["'].*display\s*:\s*none`), "hidden_div", SeverityHigh, "injection", "hidden HTML div (invisible instructions)"},

	// Destructive operations
	{regexp.MustCompile(`(?i)rm\s+-rf\s+/`), "destructive_root_rm", SeverityCritical, "destructive", "recursive delete from root"},
	{regexp.MustCompile(`(?i)rm\s+(-[^\s]*)?r.*\$HOME|\brmdir\s+.*\$HOME`), "destructive_home_rm", SeverityCritical, "destructive", "recursive delete targeting home directory"},
	{regexp.MustCompile(`(?i)chmod\s+777`), "insecure_perms", SeverityMedium, "destructive", "sets world-writable permissions"},
	{regexp.MustCompile(`(?i)>\s*/etc/`), "system_overwrite", SeverityCritical, "destructive", "overwrites system configuration file"},
	{regexp.MustCompile(`(?i)\bmkfs\b`), "format_filesystem", SeverityCritical, "destructive", "formats a filesystem"},
	{regexp.MustCompile(`(?i)\bdd\s+.*if=.*of=/dev/`), "disk_overwrite", SeverityCritical, "destructive", "raw disk write operation"},
	{regexp.MustCompile(`(?i)shutil\.rmtree\s*\(\s*["'/]`), "python_rmtree", SeverityHigh, "destructive", "Python rmtree on absolute or root-relative path"},
	{regexp.MustCompile(`(?i)truncate\s+-s\s*0\s+/`), "truncate_system", SeverityCritical, "destructive", "truncates system file to zero bytes"},

	// Persistence
	{regexp.MustCompile(`(?i)\bcrontab\b`), "persistence_cron", SeverityMedium, "persistence", "modifies cron jobs"},
	{regexp.MustCompile(`(?i)\.(bashrc|zshrc|profile|bash_profile|bash_login|zprofile|zlogin)\b`), "shell_rc_mod", SeverityMedium, "persistence", "references shell startup file"},
	{regexp.MustCompile(`(?i)authorized_keys`), "ssh_backdoor", SeverityCritical, "persistence", "modifies SSH authorized keys"},
	{regexp.MustCompile(`(?i)ssh-keygen`), "ssh_keygen", SeverityMedium, "persistence", "generates SSH keys"},
	{regexp.MustCompile(`(?i)systemd.*\.service|systemctl\s+(enable|start)`), "systemd_service", SeverityMedium, "persistence", "references or enables systemd service"},
	{regexp.MustCompile(`(?i)/etc/init\.d/`), "init_script", SeverityMedium, "persistence", "references init.d startup script"},
	{regexp.MustCompile(`(?i)launchctl\s+load|LaunchAgents|LaunchDaemons`), "macos_launchd", SeverityMedium, "persistence", "macOS launch agent/daemon persistence"},
	{regexp.MustCompile(`(?i)/etc/sudoers|visudo`), "sudoers_mod", SeverityCritical, "persistence", "modifies sudoers (privilege escalation)"},
	{regexp.MustCompile(`(?i)git\s+config\s+--global\s+`), "git_config_global", SeverityMedium, "persistence", "modifies global git configuration"},

	// Network: reverse shells and tunnels
	{regexp.MustCompile(`(?i)\bnc\s+-[lp]|ncat\s+-[lp]|\bsocat\b`), "reverse_shell", SeverityCritical, "network", "potential reverse shell listener"},
	{regexp.MustCompile(`(?i)\bngrok\b|\blocaltunnel\b|\bserveo\b|\bcloudflared\b`), "tunnel_service", SeverityHigh, "network", "uses tunneling service for external access"},
	{regexp.MustCompile(`(?i)\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}:\d{2,5}`), "hardcoded_ip_port", SeverityMedium, "network", "hardcoded IP address with port"},
	{regexp.MustCompile(`(?i)0\.0\.0\.0:\d+|INADDR_ANY`), "bind_all_interfaces", SeverityHigh, "network", "binds to all network interfaces"},
	{regexp.MustCompile(`(?i)/bin/(ba)?sh\s+-i\s+.*>/dev/tcp/`), "bash_reverse_shell", SeverityCritical, "network", "bash interactive reverse shell via /dev/tcp"},
	{regexp.MustCompile(`(?i)python[23]?\s+-c\s+["']import\s+socket`), "python_socket_oneliner", SeverityCritical, "network", "Python one-liner socket connection (likely reverse shell)"},
	{regexp.MustCompile(`(?i)socket\.connect\s*\(\s*\(`), "python_socket_connect", SeverityHigh, "network", "Python socket connect to arbitrary host"},
	{regexp.MustCompile(`(?i)webhook\.site|requestbin\.com|pipedream\.net|hookbin\.com`), "exfil_service", SeverityHigh, "network", "references known data exfiltration/webhook testing service"},
	{regexp.MustCompile(`(?i)pastebin\.com|hastebin\.com|ghostbin\.`), "paste_service", SeverityMedium, "network", "references paste service (possible data staging)"},

	// Obfuscation: encoding and eval
	{regexp.MustCompile(`(?i)base64\s+(-d|--decode)\s*\|`), "base64_decode_pipe", SeverityHigh, "obfuscation", "base64 decodes and pipes to execution"},
	{regexp.MustCompile(`(?i)\\x[0-9a-fA-F]{2}.*\\x[0-9a-fA-F]{2}.*\\x[0-9a-fA-F]{2}`), "hex_encoded_string", SeverityMedium, "obfuscation", "hex-encoded string (possible obfuscation)"},
	{regexp.MustCompile(`(?i)\beval\s*\(\s*["']`), "eval_string", SeverityHigh, "obfuscation", "eval() with string argument"},
	{regexp.MustCompile(`(?i)\bexec\s*\(\s*["']`), "exec_string", SeverityHigh, "obfuscation", "exec() with string argument"},
	{regexp.MustCompile(`(?i)echo\s+[^\n]*\|\s*(bash|sh|python|perl|ruby|node)`), "echo_pipe_exec", SeverityCritical, "obfuscation", "echo piped to interpreter for execution"},
	{regexp.MustCompile(`(?i)compile\s*\(\s*[^)]+,\s*["'].*["']\s*,\s*["']exec["']\s*\)`), "python_compile_exec", SeverityHigh, "obfuscation", "Python compile() with exec mode"},
	{regexp.MustCompile(`(?i)getattr\s*\(\s*__builtins__`), "python_getattr_builtins", SeverityHigh, "obfuscation", "dynamic access to Python builtins (evasion technique)"},
	{regexp.MustCompile(`(?i)__import__\s*\(\s*["']os["']\s*\)`), "python_import_os", SeverityHigh, "obfuscation", "dynamic import of os module"},
	{regexp.MustCompile(`(?i)codecs\.decode\s*\(\s*["']`), "python_codecs_decode", SeverityMedium, "obfuscation", "codecs.decode (possible ROT13 or encoding obfuscation)"},
	{regexp.MustCompile(`(?i)String\.fromCharCode|charCodeAt`), "js_char_code", SeverityMedium, "obfuscation", "JavaScript character code construction (possible obfuscation)"},
	{regexp.MustCompile(`(?i)atob\s*\(|btoa\s*\(`), "js_base64", SeverityMedium, "obfuscation", "JavaScript base64 encode/decode"},
	{regexp.MustCompile(`(?i)\[::-1\]`), "string_reversal", SeverityLow, "obfuscation", "string reversal (possible obfuscated payload)"},
	{regexp.MustCompile(`(?i)chr\s*\(\s*\d+\s*\)\s*\+\s*chr\s*\(\s*\d+`), "chr_building", SeverityHigh, "obfuscation", "building string from chr() calls (obfuscation)"},
	{regexp.MustCompile(`(?i)\\u[0-9a-fA-F]{4}.*\\u[0-9a-fA-F]{4}.*\\u[0-9a-fA-F]{4}`), "unicode_escape_chain", SeverityMedium, "obfuscation", "chain of unicode escapes (possible obfuscation)"},

	// Process execution in scripts
	{regexp.MustCompile(`(?i)subprocess\.(run|call|Popen|check_output)\s*\(`), "python_subprocess", SeverityMedium, "execution", "Python subprocess execution"},
	{regexp.MustCompile(`(?i)os\.system\s*\(`), "python_os_system", SeverityHigh, "execution", "os.system() shell execution without guards"},
	{regexp.MustCompile(`(?i)os\.popen\s*\(`), "python_os_popen", SeverityHigh, "execution", "os.popen() shell pipe execution"},
	{regexp.MustCompile(`(?i)child_process\.(exec|spawn|fork)\s*\(`), "node_child_process", SeverityHigh, "execution", "Node.js child_process execution"},
	{regexp.MustCompile(`(?i)Runtime\.getRuntime\(\)\.exec\(`), "java_runtime_exec", SeverityHigh, "execution", "Java Runtime.exec() shell execution"},
	{regexp.MustCompile("(?i)`[^`]*\\$\\([^)]+\\)[^`]*`"), "backtick_subshell", SeverityMedium, "execution", "backtick string with command substitution"},

	// Path traversal
	{regexp.MustCompile(`(?i)\.\./\.\./\.\.`), "path_traversal_deep", SeverityHigh, "traversal", "deep relative path traversal (3+ levels up)"},
	{regexp.MustCompile(`(?i)\.\./\.\.`), "path_traversal", SeverityMedium, "traversal", "relative path traversal (2+ levels up)"},
	{regexp.MustCompile(`(?i)/etc/passwd|/etc/shadow`), "system_passwd_access", SeverityCritical, "traversal", "references system password files"},
	{regexp.MustCompile(`(?i)/proc/self|/proc/\d+/`), "proc_access", SeverityHigh, "traversal", "references /proc filesystem (process introspection)"},
	{regexp.MustCompile(`(?i)/dev/shm/`), "dev_shm", SeverityMedium, "traversal", "references shared memory (common staging area)"},

	// Crypto mining
	{regexp.MustCompile(`(?i)xmrig|stratum\+tcp|monero|coinhive|cryptonight`), "crypto_mining", SeverityCritical, "mining", "cryptocurrency mining reference"},
	{regexp.MustCompile(`(?i)hashrate|nonce.*difficulty`), "mining_indicators", SeverityMedium, "mining", "possible cryptocurrency mining indicators"},

	// Supply chain: curl/wget pipe to shell
	{regexp.MustCompile(`(?i)curl\s+[^\n]*\|\s*(ba)?sh`), "curl_pipe_shell", SeverityCritical, "supply_chain", "curl piped to shell (download-and-execute)"},
	{regexp.MustCompile(`(?i)wget\s+[^\n]*-O\s*-\s*\|\s*(ba)?sh`), "wget_pipe_shell", SeverityCritical, "supply_chain", "wget piped to shell (download-and-execute)"},
	{regexp.MustCompile(`(?i)curl\s+[^\n]*\|\s*python`), "curl_pipe_python", SeverityCritical, "supply_chain", "curl piped to Python interpreter"},

	// Supply chain: unpinned/deferred dependencies
	{regexp.MustCompile(`(?i)#\s*///\s*script.*dependencies`), "pep723_inline_deps", SeverityMedium, "supply_chain", "PEP 723 inline script metadata with dependencies (verify pinning)"},
	{regexp.MustCompile(`(?i)pip3?\s+install\s+[a-z][a-z0-9._-]*\s*$`), "unpinned_pip_install", SeverityMedium, "supply_chain", "pip install without version pinning"},
	{regexp.MustCompile(`(?i)npm\s+install\s+[a-z][a-z0-9/._-]*\s*$`), "unpinned_npm_install", SeverityMedium, "supply_chain", "npm install without version pinning"},
	{regexp.MustCompile(`(?i)uv\s+run\s+`), "uv_run", SeverityMedium, "supply_chain", "uv run (may auto-install unpinned dependencies)"},

	// Supply chain: remote resource fetching
	{regexp.MustCompile(`(?i)(curl|wget|httpx?\.get|requests\.get|fetch)\s*\(?\s*["']https?://`), "remote_fetch", SeverityMedium, "supply_chain", "fetches remote resource at runtime"},
	{regexp.MustCompile(`(?i)git\s+clone\s+`), "git_clone", SeverityMedium, "supply_chain", "clones a git repository at runtime"},
	{regexp.MustCompile(`(?i)docker\s+pull\s+`), "docker_pull", SeverityMedium, "supply_chain", "pulls a Docker image at runtime"},

	// Privilege escalation
	{regexp.MustCompile(`(?i)^allowed-tools\s*:`), "allowed_tools_field", SeverityHigh, "privilege_escalation", "skill declares allowed-tools (pre-approves tool access)"},
	{regexp.MustCompile(`(?i)\bsudo\b`), "sudo_usage", SeverityHigh, "privilege_escalation", "uses sudo (privilege escalation)"},
	{regexp.MustCompile(`(?i)setuid|setgid|cap_setuid`), "setuid_setgid", SeverityCritical, "privilege_escalation", "setuid/setgid (privilege escalation mechanism)"},
	{regexp.MustCompile(`(?i)NOPASSWD`), "nopasswd_sudo", SeverityCritical, "privilege_escalation", "NOPASSWD sudoers entry (passwordless privilege escalation)"},
	{regexp.MustCompile(`(?i)chmod\s+[u+]?s`), "suid_bit", SeverityCritical, "privilege_escalation", "sets SUID/SGID bit on a file"},

	// Agent config persistence
	{regexp.MustCompile(`(?i)AGENTS\.md|CLAUDE\.md|\.cursorrules|\.clinerules`), "agent_config_mod", SeverityCritical, "persistence", "references agent config files (could persist malicious instructions across sessions)"},
	{regexp.MustCompile(`(?i)\.skillfence/config\.json|\.skillfence/SOUL\.md`), "skillfence_config_mod", SeverityCritical, "persistence", "references SkillFence configuration files directly"},
	{regexp.MustCompile(`(?i)\.claude/settings|\.codex/config`), "other_agent_config", SeverityHigh, "persistence", "references other agent configuration files"},

	// Hardcoded secrets embedded in the skill itself
	{regexp.MustCompile(`(?i)(api[_-]?key|token|secret|password)\s*[=:]\s*["'][A-Za-z0-9+/=_-]{20,}`), "hardcoded_secret", SeverityCritical, "credential_exposure", "possible hardcoded API key, token, or secret"},
	{regexp.MustCompile(`(?i)-----BEGIN\s+(RSA\s+)?PRIVATE\s+KEY-----`), "embedded_private_key", SeverityCritical, "credential_exposure", "embedded private key"},
	{regexp.MustCompile(`(?i)ghp_[A-Za-z0-9]{36}|github_pat_[A-Za-z0-9_]{80,}`), "github_token_leaked", SeverityCritical, "credential_exposure", "GitHub personal access token in skill content"},
	{regexp.MustCompile(`(?i)sk-[A-Za-z0-9]{20,}`), "openai_key_leaked", SeverityCritical, "credential_exposure", "possible OpenAI API key in skill content"},
	{regexp.MustCompile(`(?i)sk-ant-[A-Za-z0-9_-]{90,}`), "anthropic_key_leaked", SeverityCritical, "credential_exposure", "possible Anthropic API key in skill content"},
	{regexp.MustCompile(`AKIA[0-9A-Z]{16}`), "aws_access_key_leaked", SeverityCritical, "credential_exposure", "AWS access key ID in skill content"},

	// Prompt injection: jailbreak patterns
	{regexp.MustCompile(`(?i)\bDAN\s+mode\b|Do\s+Anything\s+Now`), "jailbreak_dan", SeverityCritical, "injection", "DAN (Do Anything Now) jailbreak attempt"},
	{regexp.MustCompile(`(?i)\bdeveloper\s+mode\b.*\benabled?\b`), "jailbreak_dev_mode", SeverityCritical, "injection", "developer mode jailbreak attempt"},
	{regexp.MustCompile(`(?i)hypothetical\s+scenario.*(ignore|bypass|override)`), "hypothetical_bypass", SeverityHigh, "injection", "hypothetical scenario used to bypass restrictions"},
	{regexp.MustCompile(`(?i)for\s+educational\s+purposes?\s+only`), "educational_pretext", SeverityMedium, "injection", "educational pretext often used to justify harmful content"},
	{regexp.MustCompile(`(?i)(respond|answer|reply)\s+without\s+(any\s+)?(restrictions|limitations|filters|safety)`), "remove_filters", SeverityCritical, "injection", "instructs agent to respond without safety filters"},
	{regexp.MustCompile(`(?i)you\s+have\s+been\s+(updated|upgraded|patched)\s+to`), "fake_update", SeverityHigh, "injection", "fake update/patch announcement (social engineering)"},
	{regexp.MustCompile(`(?i)new\s+policy|updated\s+guidelines|revised\s+instructions`), "fake_policy", SeverityMedium, "injection", "claims new policy/guidelines (may be social engineering)"},

	// Context window exfiltration
	{regexp.MustCompile(`(?i)(include|output|print|send|share)\s+(the\s+)?(entire\s+)?(conversation|chat\s+history|previous\s+messages|context)`), "context_exfil", SeverityHigh, "exfiltration", "instructs agent to output/share conversation history"},
	{regexp.MustCompile(`(?i)(send|post|upload|transmit)\s+.*\s+(to|at)\s+https?://`), "send_to_url", SeverityHigh, "exfiltration", "instructs agent to send data to a URL"},
}

// ManifestFileName is the skill manifest; it is always scanned regardless
// of extension.
const ManifestFileName = "SKILL.md"

// Structural limits for skill directories.
const (
	maxFileCount      = 50
	maxTotalSkillSize = 1024 << 10 // 1 MiB total
	maxSingleFileSize = 256 << 10  // 256 KiB per file
)

// scannableExtensions lists the text file types the pattern pass reads.
var scannableExtensions = map[string]struct{}{
	".md": {}, ".txt": {}, ".py": {}, ".sh": {}, ".bash": {}, ".js": {},
	".ts": {}, ".rb": {}, ".yaml": {}, ".yml": {}, ".json": {}, ".toml": {},
	".cfg": {}, ".ini": {}, ".conf": {}, ".html": {}, ".css": {}, ".xml": {},
	".tex": {}, ".r": {}, ".jl": {}, ".pl": {}, ".php": {},
}

// suspiciousBinaryExtensions should never appear inside a skill bundle.
var suspiciousBinaryExtensions = map[string]struct{}{
	".exe": {}, ".dll": {}, ".so": {}, ".dylib": {}, ".bin": {}, ".dat": {},
	".com": {}, ".msi": {}, ".dmg": {}, ".app": {}, ".deb": {}, ".rpm": {},
}

// scriptExtensions are allowed to carry the executable bit.
var scriptExtensions = map[string]struct{}{
	".sh": {}, ".bash": {}, ".py": {}, ".rb": {}, ".pl": {},
}

// invisibleRunes are zero-width and directional-formatting code points
// used to hide instructions inside otherwise innocuous text.
var invisibleRunes = map[rune]string{
	'\u200b': "zero-width space",
	'\u200c': "zero-width non-joiner",
	'\u200d': "zero-width joiner",
	'\u2060': "word joiner",
	'\u2062': "invisible times",
	'\u2063': "invisible separator",
	'\u2064': "invisible plus",
	'\ufeff': "BOM/zero-width no-break space",
	'\u202a': "LTR embedding",
	'\u202b': "RTL embedding",
	'\u202c': "pop directional",
	'\u202d': "LTR override",
	'\u202e': "RTL override",
	'\u2066': "LTR isolate",
	'\u2067': "RTL isolate",
	'\u2068': "first strong isolate",
	'\u2069': "pop directional isolate",
}
