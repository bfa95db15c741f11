package pagemeta

import (
	"regexp"
	"strings"
)

// wwwPrefix matches a leading www label such as "www." or "www2.".
var wwwPrefix = regexp.MustCompile(`^www\d*\.`)

// DeriveProvider turns a hostname into a human readable site name.
//
//	www.example.com      -> "example"
//	things.example.co.uk -> "things example"
func DeriveProvider(host string) string {
	host = wwwPrefix.ReplaceAllString(host, "")
	host = strings.ReplaceAll(host, ".co.", ".")

	labels := strings.Split(host, ".")
	return strings.Join(labels[:len(labels)-1], " ")
}
