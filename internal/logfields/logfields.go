package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyStatus     = "status"
	KeyDurationMS = "duration_ms"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
	KeyRequestID  = "request_id"
	KeyFramework  = "framework"
	KeyVersion    = "version"
	KeyPage       = "page"
	KeyConfigPath = "config_path"
	KeySubject    = "subject"
	KeyURL        = "url"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Method(m string) slog.Attr        { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func UserAgent(ua string) slog.Attr    { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(addr string) slog.Attr { return slog.String(KeyRemoteAddr, addr) }
func RequestID(id string) slog.Attr    { return slog.String(KeyRequestID, id) }
func Framework(f string) slog.Attr     { return slog.String(KeyFramework, f) }
func Version(v string) slog.Attr       { return slog.String(KeyVersion, v) }
func Page(p string) slog.Attr          { return slog.String(KeyPage, p) }
func ConfigPath(p string) slog.Attr    { return slog.String(KeyConfigPath, p) }
func Subject(s string) slog.Attr       { return slog.String(KeySubject, s) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
