/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var errUnknownLanguage = errors.New("unknown language")

// Language is a language code shared by the mobile and HMI interfaces.
// The zero value means "not requested".
type Language string

const (
	LanguageEnUS Language = "EN-US"
	LanguageEsMX Language = "ES-MX"
	LanguageFrCA Language = "FR-CA"
	LanguageDeDE Language = "DE-DE"
	LanguageEsES Language = "ES-ES"
	LanguageEnGB Language = "EN-GB"
	LanguageRuRU Language = "RU-RU"
	LanguageTrTR Language = "TR-TR"
	LanguagePlPL Language = "PL-PL"
	LanguageFrFR Language = "FR-FR"
	LanguageItIT Language = "IT-IT"
	LanguageSvSE Language = "SV-SE"
	LanguagePtPT Language = "PT-PT"
	LanguageNlNL Language = "NL-NL"
	LanguageEnAU Language = "EN-AU"
	LanguageZhCN Language = "ZH-CN"
	LanguageZhTW Language = "ZH-TW"
	LanguageJaJP Language = "JA-JP"
	LanguageArSA Language = "AR-SA"
	LanguageKoKR Language = "KO-KR"
	LanguagePtBR Language = "PT-BR"
	LanguageCsCZ Language = "CS-CZ"
	LanguageDaDK Language = "DA-DK"
	LanguageNoNO Language = "NO-NO"
	LanguageNlBE Language = "NL-BE"
	LanguageElGR Language = "EL-GR"
	LanguageHuHU Language = "HU-HU"
	LanguageFiFI Language = "FI-FI"
	LanguageSkSK Language = "SK-SK"
	LanguageEnIN Language = "EN-IN"
	LanguageThTH Language = "TH-TH"
	LanguageEnSA Language = "EN-SA"
	LanguageHeIL Language = "HE-IL"
	LanguageRoRO Language = "RO-RO"
	LanguageUkUA Language = "UK-UA"
	LanguageIdID Language = "ID-ID"
	LanguageViVN Language = "VI-VN"
	LanguageMsMY Language = "MS-MY"
	LanguageHiIN Language = "HI-IN"

	// DefaultLanguage is assumed by the HMI when nothing else is known.
	DefaultLanguage = LanguageEnUS
)

//nolint:gochecknoglobals // closed enumeration
var supportedLanguages = []Language{
	LanguageEnUS, LanguageEsMX, LanguageFrCA, LanguageDeDE, LanguageEsES,
	LanguageEnGB, LanguageRuRU, LanguageTrTR, LanguagePlPL, LanguageFrFR,
	LanguageItIT, LanguageSvSE, LanguagePtPT, LanguageNlNL, LanguageEnAU,
	LanguageZhCN, LanguageZhTW, LanguageJaJP, LanguageArSA, LanguageKoKR,
	LanguagePtBR, LanguageCsCZ, LanguageDaDK, LanguageNoNO, LanguageNlBE,
	LanguageElGR, LanguageHuHU, LanguageFiFI, LanguageSkSK, LanguageEnIN,
	LanguageThTH, LanguageEnSA, LanguageHeIL, LanguageRoRO, LanguageUkUA,
	LanguageIdID, LanguageViVN, LanguageMsMY, LanguageHiIN,
}

// SupportedLanguages returns a copy of every language code the broker knows.
func SupportedLanguages() []Language {
	out := make([]Language, len(supportedLanguages))
	copy(out, supportedLanguages)

	return out
}

// ParseLanguage normalizes a wire value ("en_us", "EN-US") into a Language.
// An empty string yields the zero Language without error.
func ParseLanguage(raw string) (Language, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	candidate := Language(strings.ToUpper(strings.ReplaceAll(raw, "_", "-")))
	if !candidate.Valid() {
		return "", fmt.Errorf("%w: %q", errUnknownLanguage, raw)
	}

	return candidate, nil
}

// Valid reports whether l is a member of the supported enumeration.
func (l Language) Valid() bool {
	for _, known := range supportedLanguages {
		if l == known {
			return true
		}
	}

	return false
}

// IsZero reports whether no language was given.
func (l Language) IsZero() bool {
	return l == ""
}

func (l Language) String() string {
	return string(l)
}

// UnmarshalJSON accepts any casing and either separator.
func (l *Language) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	parsed, err := ParseLanguage(raw)
	if err != nil {
		return err
	}

	*l = parsed

	return nil
}
