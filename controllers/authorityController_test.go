package controllers

import (
	"testing"

	"civiclens-be/models"

	"github.com/stretchr/testify/assert"
)

func TestAuthorityQueryMatchesHolderName(t *testing.T) {
	authority := &models.Authority{Position: "Sanitation Engineer"}
	holder := map[string]interface{}{"fullName": "Ram Kumar"}

	assert.True(t, authorityMatchesQuery(authority, holder, "Ram"))
	assert.True(t, authorityMatchesQuery(authority, holder, "kumar"))
	assert.True(t, authorityMatchesQuery(authority, holder, "engineer"))
	assert.False(t, authorityMatchesQuery(authority, holder, "plumber"))
}

func TestAuthorityQueryEmptyMatchesAll(t *testing.T) {
	assert.True(t, authorityMatchesQuery(&models.Authority{}, map[string]interface{}{}, ""))
}

func TestAuthorityQueryToleratesMissingHolderName(t *testing.T) {
	authority := &models.Authority{Position: "Road Inspector"}
	holder := map[string]interface{}{"id": "whatever"}

	assert.True(t, authorityMatchesQuery(authority, holder, "road"))
	assert.False(t, authorityMatchesQuery(authority, holder, "ram"))
}

func TestAuthorityQueryTreatsRegexCharsLiterally(t *testing.T) {
	authority := &models.Authority{Position: "Engineer (Grade A)"}
	holder := map[string]interface{}{"fullName": "Ram Kumar"}

	assert.True(t, authorityMatchesQuery(authority, holder, "(grade a)"))
	assert.False(t, authorityMatchesQuery(authority, holder, ".*"))
}
