package game

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MaxPlayerNameLength 玩家名最大字符数(按 rune 计)
const MaxPlayerNameLength = 24

var (
	// ErrEmptyName 玩家名为空
	ErrEmptyName = errors.New("Name cannot be empty")
	// ErrNameTooLong 玩家名过长
	ErrNameTooLong = errors.New("Name must be 24 characters or less")
)

// ValidatePlayerName 去掉首尾空白后校验玩家名，返回可用的名字
func ValidatePlayerName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxPlayerNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}
