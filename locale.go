package main

import "birthdayppt/i18n"

// languageForLocale 설정 파일이 아직 없을 때 쓸 언어. 영어 로캘만 English 로 바꾼다.
func languageForLocale(locale string) string {
	return string(i18n.ParseLanguage(locale))
}
