// Package i18n maps UI state to the Russian or English text shown to the user.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

type Lang string

const (
	Russian Lang = "ru"
	English Lang = "en"
)

// DefaultLang is used when nothing in the environment matches a supported language.
const DefaultLang = Russian

var (
	supported = []Lang{Russian, English}
	matcher   = language.NewMatcher([]language.Tag{language.Russian, language.English})
)

// ParseLang accepts "ru", "en" or any BCP 47 / POSIX locale that matches one of them.
func ParseLang(s string) (Lang, error) {
	tag, err := language.Parse(normalizeLocale(s))
	if err != nil {
		return "", fmt.Errorf("unsupported language %q: %w", s, err)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "", fmt.Errorf("unsupported language %q", s)
	}
	return supported[idx], nil
}

// Detect returns the first preference that matches a supported language,
// typically called with $LC_ALL, $LC_MESSAGES and $LANG.
func Detect(prefs ...string) Lang {
	for _, p := range prefs {
		if p == "" {
			continue
		}
		if lang, err := ParseLang(p); err == nil {
			return lang
		}
	}
	return DefaultLang
}

// normalizeLocale turns "ru_RU.UTF-8@euro" into "ru-RU".
func normalizeLocale(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	return strings.ReplaceAll(s, "_", "-")
}

func (l Lang) Other() Lang {
	if l == English {
		return Russian
	}
	return English
}

type key string

const (
	keyTitle          key = "title"
	keyFolderFrame    key = "folder_frame"
	keySettingsFrame  key = "settings_frame"
	keyRevokeInterval key = "revoke_interval"
	keySearchButton   key = "search_button"
	keyFileColumn     key = "file_column"
	keyExpiryColumn   key = "expiry_column"
	keyDaysLeftColumn key = "days_left_column"
	keyIssuerColumn   key = "issuer_column"
	keySubjectColumn  key = "subject_column"
	keySerialColumn   key = "serial_column"
	keyStatusReady    key = "status_ready"
	keyErrorNoFolder  key = "error_no_folder"
	keySelectFolder   key = "select_folder_button"
	keyScanning       key = "scanning_status"
	keyDone           key = "done_status"
	keyError          key = "error_status"
	keyCopyButton     key = "copy_button"
	keyCopySuccess    key = "copy_success"
	keyNoData         key = "no_data"
	keyToggleButton   key = "toggle_button"
	keyQuitButton     key = "quit_button"
)

var translations = map[Lang]map[key]string{
	Russian: {
		keyTitle:          "Проверка сертификатов",
		keyFolderFrame:    "Путь к сертификатам",
		keySettingsFrame:  "Настройки поиска",
		keyRevokeInterval: "Интервал отзыва (дней)",
		keySearchButton:   "ПОИСК",
		keyFileColumn:     "Имя файла",
		keyExpiryColumn:   "Дата истечения",
		keyDaysLeftColumn: "Дней осталось",
		keyIssuerColumn:   "Издатель",
		keySubjectColumn:  "Владелец",
		keySerialColumn:   "Серийный номер",
		keyStatusReady:    "Готов к работе",
		keyErrorNoFolder:  "Укажите правильную папку с сертификатами!",
		keySelectFolder:   "Выбрать",
		keyScanning:       "Проверяю сертификаты в %s...",
		keyDone:           "Готово. Найдено %d сертификатов, истекающих в ближайшие %d дней.",
		keyError:          "Ошибка при проверке",
		keyCopyButton:     "Копировать",
		keyCopySuccess:    "Данные скопированы в буфер!",
		keyNoData:         "Нет данных для копирования!",
		keyToggleButton:   "EN/RU",
		keyQuitButton:     "Выход",
	},
	English: {
		keyTitle:          "Certificate Checker",
		keyFolderFrame:    "Certificate Folder",
		keySettingsFrame:  "Search Settings",
		keyRevokeInterval: "Expiry Threshold (days)",
		keySearchButton:   "SEARCH",
		keyFileColumn:     "File Name",
		keyExpiryColumn:   "Expiry Date",
		keyDaysLeftColumn: "Days Left",
		keyIssuerColumn:   "Issuer",
		keySubjectColumn:  "Subject",
		keySerialColumn:   "Serial Number",
		keyStatusReady:    "Ready",
		keyErrorNoFolder:  "Select a valid certificate folder!",
		keySelectFolder:   "Browse",
		keyScanning:       "Scanning certificates in %s...",
		keyDone:           "Done. Found %d certificates expiring in the next %d days.",
		keyError:          "Error during scan",
		keyCopyButton:     "Copy",
		keyCopySuccess:    "Data copied to clipboard!",
		keyNoData:         "No data to copy!",
		keyToggleButton:   "EN/RU",
		keyQuitButton:     "Quit",
	},
}

func text(l Lang, k key) string {
	if t, ok := translations[l][k]; ok {
		return t
	}
	return translations[DefaultLang][k]
}
