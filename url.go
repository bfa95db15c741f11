package pagemeta

import "net/url"

// MakeAbsolute resolves ref against base. A ref that already names a scheme
// or host is returned unchanged. Resolution is best-effort: if either URL
// fails to parse, ref is returned as given.
func MakeAbsolute(base, ref string) string {
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if r.Scheme != "" || r.Host != "" {
		return ref
	}

	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// HostOf returns the hostname of rawURL without scheme, port, or path.
// Returns EINVALIDURL if rawURL cannot be parsed or has no host.
func HostOf(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALIDURL, "invalid URL %q: %v", rawURL, err)
	}
	host := u.Hostname()
	if host == "" {
		return "", Errorf(EINVALIDURL, "URL %q has no host", rawURL)
	}
	return host, nil
}
