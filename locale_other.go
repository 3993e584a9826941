//go:build !windows

package main

import "os"

// systemLocale LC_ALL, LC_MESSAGES, LANG 순으로 첫 번째 값 (예: "ko_KR.UTF-8")
func systemLocale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
