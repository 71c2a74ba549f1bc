package controller_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizcourse_backend/internals/constants"
	"quizcourse_backend/internals/features/taxonomy/service"
	"quizcourse_backend/internals/tests"
)

func TestTagCRUD(t *testing.T) {
	db := tests.OpenDB(t)
	app := tests.NewApp(db)
	admin := tests.Token(t, tests.CreateUser(t, db, constants.RoleAdmin))
	student := tests.Token(t, tests.CreateUser(t, db, constants.RoleStudent))

	res := tests.Do(t, app, "POST", "/api/tags", student, map[string]any{"tag_name": "Go"})
	require.Equal(t, 403, res.Status)

	res = tests.Do(t, app, "POST", "/api/tags", admin, map[string]any{"tag_name": "Programação Go"})
	require.Equal(t, 201, res.Status, string(res.Body))
	first := res.Map(t)
	assert.Equal(t, "programacao-go", first["tag_slug"])

	res = tests.Do(t, app, "POST", "/api/tags", admin, map[string]any{"tag_name": "Programação  GO"})
	require.Equal(t, 201, res.Status)
	assert.Equal(t, "programacao-go-2", res.Map(t)["tag_slug"])

	res = tests.Do(t, app, "GET", "/api/tags?q=programa&sort_by=name&order=asc", student, nil)
	require.Equal(t, 200, res.Status)
	assert.Len(t, res.List(t), 2)
	assert.Equal(t, "2", res.Header.Get("X-Total-Count"))

	id := tests.ID(t, first, "tag_id")
	res = tests.Do(t, app, "PATCH", "/api/tags/"+id, admin, map[string]any{"tag_name": "Golang"})
	require.Equal(t, 200, res.Status, string(res.Body))
	assert.Equal(t, "Golang", res.Map(t)["tag_name"])

	res = tests.Do(t, app, "PATCH", "/api/tags/"+id, student, map[string]any{"tag_name": "x"})
	assert.Equal(t, 403, res.Status)

	res = tests.Do(t, app, "DELETE", "/api/tags/"+id, admin, nil)
	require.Equal(t, 200, res.Status)
	assert.Equal(t, service.MsgTagDeleted, res.Map(t)["message"])

	res = tests.Do(t, app, "DELETE", "/api/tags/"+id, admin, nil)
	assert.Equal(t, 404, res.Status)

	res = tests.Do(t, app, "GET", "/api/tags/"+uuid.NewString(), student, nil)
	assert.Equal(t, 404, res.Status)
}

func TestTagDeleteClearsQuestionLinks(t *testing.T) {
	db := tests.OpenDB(t)
	app := tests.NewApp(db)
	admin := tests.Token(t, tests.CreateUser(t, db, constants.RoleAdmin))

	res := tests.Do(t, app, "POST", "/api/tags", admin, map[string]any{"tag_name": "SQL"})
	require.Equal(t, 201, res.Status)
	tagID := tests.ID(t, res.Map(t), "tag_id")

	res = tests.Do(t, app, "POST", "/api/questions", admin, map[string]any{
		"question_statement":  "Qual comando remove linhas?",
		"question_type":       "ESSAY",
		"question_difficulty": "EASY",
		"tag_ids":             []string{tagID},
	})
	require.Equal(t, 201, res.Status, string(res.Body))
	questionID := tests.ID(t, res.Map(t), "question_id")

	res = tests.Do(t, app, "DELETE", "/api/tags/"+tagID, admin, nil)
	require.Equal(t, 200, res.Status)

	res = tests.Do(t, app, "GET", "/api/questions/"+questionID, admin, nil)
	require.Equal(t, 200, res.Status)
	assert.Empty(t, res.Map(t)["tags"])
}

func TestBancaDuplicateName(t *testing.T) {
	db := tests.OpenDB(t)
	app := tests.NewApp(db)
	admin := tests.Token(t, tests.CreateUser(t, db, constants.RoleAdmin))

	res := tests.Do(t, app, "POST", "/api/bancas", admin, map[string]any{"banca_name": "Cebraspe", "banca_acronym": "CESPE"})
	require.Equal(t, 201, res.Status, string(res.Body))

	res = tests.Do(t, app, "POST", "/api/bancas", admin, map[string]any{"banca_name": "Cebraspe"})
	require.Equal(t, 409, res.Status)
	assert.Equal(t, service.MsgBancaDuplicate, res.Map(t)["message"])

	res = tests.Do(t, app, "POST", "/api/bancas", admin, map[string]any{"banca_name": "FGV", "banca_website": "not a url"})
	assert.Equal(t, 400, res.Status)
}

func TestTechnologyAndTopic(t *testing.T) {
	db := tests.OpenDB(t)
	app := tests.NewApp(db)
	admin := tests.Token(t, tests.CreateUser(t, db, constants.RoleAdmin))

	res := tests.Do(t, app, "POST", "/api/technologies", admin, map[string]any{
		"technology_name":     "Node.js",
		"technology_icon_url": "https://example.com/node.svg",
	})
	require.Equal(t, 201, res.Status, string(res.Body))
	assert.Equal(t, "node-js", res.Map(t)["technology_slug"])

	res = tests.Do(t, app, "POST", "/api/topics", admin, map[string]any{
		"topic_name":        "Redes de Computadores",
		"topic_slug":        "redes",
		"topic_description": "Camadas, protocolos e roteamento.",
	})
	require.Equal(t, 201, res.Status, string(res.Body))
	topic := res.Map(t)
	assert.Equal(t, "redes", topic["topic_slug"])

	// blank description clears the column
	res = tests.Do(t, app, "PATCH", "/api/topics/"+tests.ID(t, topic, "topic_id"), admin, map[string]any{"topic_description": ""})
	require.Equal(t, 200, res.Status, string(res.Body))
	assert.NotContains(t, res.Map(t), "topic_description")
}
