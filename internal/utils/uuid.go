// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// LocalIDPrefix starts every locally generated visit id.
const LocalIDPrefix = "offline-"

type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a time-ordered UUIDv7, or a random v4 if the clock source
// fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// LocalIDGenerator produces ids of the form offline-<unix-millis>-<uuidv7>.
// The UUID part keeps ids unique even when two visits are captured within the
// same millisecond.
type LocalIDGenerator struct {
	uuids *UUIDGenerator
	now   func() time.Time
}

func NewLocalIDGenerator() *LocalIDGenerator {
	return &LocalIDGenerator{uuids: NewUUIDGenerator(), now: time.Now}
}

func (g *LocalIDGenerator) Generate() string {
	return LocalIDPrefix + strconv.FormatInt(g.now().UnixMilli(), 10) + "-" + g.uuids.Generate()
}
