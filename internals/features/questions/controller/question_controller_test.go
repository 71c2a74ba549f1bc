package controller_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"quizcourse_backend/internals/constants"
	"quizcourse_backend/internals/features/questions/service"
	"quizcourse_backend/internals/tests"
)

type env struct {
	db      *gorm.DB
	app     *fiber.App
	admin   string
	teacher string
	studA   string
	studB   string
	aID     string
	bID     string
}

func setup(t *testing.T) env {
	db := tests.OpenDB(t)
	a := tests.CreateUser(t, db, constants.RoleStudent)
	b := tests.CreateUser(t, db, constants.RoleStudent)
	return env{
		db:      db,
		app:     tests.NewApp(db),
		admin:   tests.Token(t, tests.CreateUser(t, db, constants.RoleAdmin)),
		teacher: tests.Token(t, tests.CreateUser(t, db, constants.RoleTeacher)),
		studA:   tests.Token(t, a),
		studB:   tests.Token(t, b),
		aID:     a.ID.String(),
		bID:     b.ID.String(),
	}
}

func mcBody(statement string) map[string]any {
	return map[string]any{
		"question_statement":  statement,
		"question_type":       "MULTIPLE_CHOICE",
		"question_difficulty": "MEDIUM",
		"question_year":       2023,
		"options": []map[string]any{
			{"option_label": "A", "option_text": "2"},
			{"option_label": "B", "option_text": "4", "option_is_correct": true},
			{"option_label": "C", "option_text": "8"},
		},
	}
}

// optionIDs maps label -> option_id of a decoded question.
func optionIDs(t *testing.T, q map[string]any) map[string]string {
	out := map[string]string{}
	for _, o := range q["options"].([]any) {
		m := o.(map[string]any)
		out[m["option_label"].(string)] = tests.ID(t, m, "option_id")
	}
	return out
}

func (e env) question(t *testing.T, token string, body map[string]any) map[string]any {
	t.Helper()
	res := tests.Do(t, e.app, "POST", "/api/questions", token, body)
	require.Equal(t, 201, res.Status, string(res.Body))
	return res.Map(t)
}

func TestCreateQuestionNested(t *testing.T) {
	e := setup(t)

	res := tests.Do(t, e.app, "POST", "/api/tags", e.admin, map[string]any{"tag_name": "Aritmética"})
	require.Equal(t, 201, res.Status)
	tagID := tests.ID(t, res.Map(t), "tag_id")

	body := mcBody("Quanto é 2 + 2?")
	body["tag_ids"] = []string{tagID, tagID}
	q := e.question(t, e.teacher, body)

	assert.Len(t, q["options"], 3)
	assert.Len(t, q["tags"], 1)
	assert.Equal(t, "MULTIPLE_CHOICE", q["question_type"])

	res = tests.Do(t, e.app, "POST", "/api/questions", e.studA, mcBody("Aluno não cria questões"))
	assert.Equal(t, 403, res.Status)

	body = mcBody("Tag inexistente")
	body["tag_ids"] = []string{uuid.NewString()}
	res = tests.Do(t, e.app, "POST", "/api/questions", e.teacher, body)
	assert.Equal(t, 404, res.Status)
}

func TestCreateQuestionOptionRules(t *testing.T) {
	e := setup(t)

	cases := map[string]map[string]any{
		"no correct option": {
			"question_statement": "Sem correta?", "question_type": "MULTIPLE_CHOICE", "question_difficulty": "EASY",
			"options": []map[string]any{{"option_label": "A", "option_text": "x"}, {"option_label": "B", "option_text": "y"}},
		},
		"two correct options": {
			"question_statement": "Duas corretas?", "question_type": "MULTIPLE_CHOICE", "question_difficulty": "EASY",
			"options": []map[string]any{{"option_label": "A", "option_text": "x", "option_is_correct": true}, {"option_label": "B", "option_text": "y", "option_is_correct": true}},
		},
		"repeated label": {
			"question_statement": "Rótulo repetido?", "question_type": "MULTIPLE_CHOICE", "question_difficulty": "EASY",
			"options": []map[string]any{{"option_label": "A", "option_text": "x", "option_is_correct": true}, {"option_label": "A", "option_text": "y"}},
		},
		"true/false with three": {
			"question_statement": "Verdadeiro ou falso?", "question_type": "TRUE_FALSE", "question_difficulty": "EASY",
			"options": []map[string]any{{"option_label": "A", "option_text": "V", "option_is_correct": true}, {"option_label": "B", "option_text": "F"}, {"option_label": "C", "option_text": "?"}},
		},
		"essay with options": {
			"question_statement": "Disserte sobre Go.", "question_type": "ESSAY", "question_difficulty": "HARD",
			"options": []map[string]any{{"option_label": "A", "option_text": "x", "option_is_correct": true}},
		},
		"bad label": {
			"question_statement": "Rótulo Z?", "question_type": "MULTIPLE_CHOICE", "question_difficulty": "EASY",
			"options": []map[string]any{{"option_label": "Z", "option_text": "x", "option_is_correct": true}, {"option_label": "A", "option_text": "y"}},
		},
	}
	for name, body := range cases {
		res := tests.Do(t, e.app, "POST", "/api/questions", e.teacher, body)
		assert.Equal(t, 400, res.Status, name)
	}
}

func TestListQuestionsFilters(t *testing.T) {
	e := setup(t)

	res := tests.Do(t, e.app, "POST", "/api/bancas", e.admin, map[string]any{"banca_name": "FGV"})
	require.Equal(t, 201, res.Status)
	bancaID := tests.ID(t, res.Map(t), "banca_id")

	withBanca := mcBody("Questão da FGV sobre soma")
	withBanca["question_banca_id"] = bancaID
	e.question(t, e.teacher, withBanca)

	hard := mcBody("Questão difícil sobre soma")
	hard["question_difficulty"] = "HARD"
	hard["question_banca_id"] = bancaID
	e.question(t, e.teacher, hard)

	e.question(t, e.teacher, map[string]any{
		"question_statement": "Explique interfaces em Go.", "question_type": "ESSAY", "question_difficulty": "HARD",
	})

	res = tests.Do(t, e.app, "GET", "/api/questions?banca_id="+bancaID, e.studA, nil)
	require.Equal(t, 200, res.Status)
	assert.Len(t, res.List(t), 2)

	// filters intersect
	res = tests.Do(t, e.app, "GET", "/api/questions?bancaId="+bancaID+"&difficulty=HARD", e.studA, nil)
	require.Equal(t, 200, res.Status)
	rows := res.List(t)
	require.Len(t, rows, 1)
	assert.Equal(t, "Questão difícil sobre soma", rows[0]["question_statement"])

	res = tests.Do(t, e.app, "GET", "/api/questions?type=ESSAY&q=interfaces", e.studA, nil)
	require.Equal(t, 200, res.Status)
	assert.Len(t, res.List(t), 1)

	res = tests.Do(t, e.app, "GET", "/api/questions?difficulty=IMPOSSIBLE", e.studA, nil)
	assert.Equal(t, 400, res.Status)
}

func TestQuestionAuthorOwnership(t *testing.T) {
	e := setup(t)
	q := e.question(t, e.teacher, mcBody("Quanto é 2 + 2?"))
	id := tests.ID(t, q, "question_id")

	other := tests.Token(t, tests.CreateUser(t, e.db, constants.RoleTeacher))
	res := tests.Do(t, e.app, "PATCH", "/api/questions/"+id, other, map[string]any{"question_difficulty": "HARD"})
	assert.Equal(t, 403, res.Status)

	res = tests.Do(t, e.app, "PATCH", "/api/questions/"+id, e.teacher, map[string]any{
		"question_difficulty": "HARD",
		"options": []map[string]any{
			{"option_label": "A", "option_text": "Verdadeiro", "option_is_correct": true},
			{"option_label": "B", "option_text": "Falso"},
		},
		"question_type": "TRUE_FALSE",
	})
	require.Equal(t, 200, res.Status, string(res.Body))
	updated := res.Map(t)
	assert.Equal(t, "HARD", updated["question_difficulty"])
	assert.Len(t, updated["options"], 2)

	// switching to essay while keeping options is rejected
	res = tests.Do(t, e.app, "PATCH", "/api/questions/"+id, e.teacher, map[string]any{"question_type": "ESSAY"})
	assert.Equal(t, 400, res.Status)

	res = tests.Do(t, e.app, "DELETE", "/api/questions/"+id, e.admin, nil)
	require.Equal(t, 200, res.Status)
	assert.Equal(t, service.MsgQuestionDeleted, res.Map(t)["message"])
	res = tests.Do(t, e.app, "GET", "/api/questions/"+id, e.admin, nil)
	assert.Equal(t, 404, res.Status)
}

func TestAnswerGrading(t *testing.T) {
	e := setup(t)
	q := e.question(t, e.teacher, mcBody("Quanto é 2 + 2?"))
	qID := tests.ID(t, q, "question_id")
	opts := optionIDs(t, q)

	res := tests.Do(t, e.app, "POST", "/api/answers", e.studA, map[string]any{
		"answer_question_id": qID,
		"answer_option_id":   opts["A"],
	})
	require.Equal(t, 201, res.Status, string(res.Body))
	answer := res.Map(t)
	assert.Equal(t, false, answer["answer_is_correct"])
	assert.Equal(t, e.aID, answer["answer_user_id"])

	res = tests.Do(t, e.app, "POST", "/api/answers", e.studA, map[string]any{
		"answer_question_id": qID,
		"answer_option_id":   opts["B"],
	})
	require.Equal(t, 409, res.Status)
	assert.Equal(t, service.MsgAnswerDuplicate, res.Map(t)["message"])

	answerID := tests.ID(t, answer, "answer_id")
	res = tests.Do(t, e.app, "PATCH", "/api/answers/"+answerID, e.studA, map[string]any{"answer_option_id": opts["B"]})
	require.Equal(t, 200, res.Status, string(res.Body))
	assert.Equal(t, true, res.Map(t)["answer_is_correct"])

	res = tests.Do(t, e.app, "POST", "/api/answers", e.studB, map[string]any{"answer_question_id": qID})
	assert.Equal(t, 400, res.Status)
}

func TestAnswerOptionFromAnotherQuestion(t *testing.T) {
	e := setup(t)
	q1 := e.question(t, e.teacher, mcBody("Quanto é 2 + 2?"))
	q2 := e.question(t, e.teacher, mcBody("Quanto é 3 + 1?"))

	res := tests.Do(t, e.app, "POST", "/api/answers", e.studA, map[string]any{
		"answer_question_id": tests.ID(t, q1, "question_id"),
		"answer_option_id":   optionIDs(t, q2)["B"],
	})
	require.Equal(t, 400, res.Status)
	errs := res.Map(t)["errors"].([]any)
	require.Len(t, errs, 1)
	assert.Equal(t, "A alternativa não pertence a esta questão.", errs[0].(map[string]any)["message"])
}

func TestEssayAnswerIsNotGraded(t *testing.T) {
	e := setup(t)
	q := e.question(t, e.teacher, map[string]any{
		"question_statement": "Explique goroutines.", "question_type": "ESSAY", "question_difficulty": "MEDIUM",
	})
	qID := tests.ID(t, q, "question_id")

	res := tests.Do(t, e.app, "POST", "/api/answers", e.studA, map[string]any{"answer_question_id": qID})
	assert.Equal(t, 400, res.Status)

	res = tests.Do(t, e.app, "POST", "/api/answers", e.studA, map[string]any{
		"answer_question_id": qID,
		"answer_text":        "São funções concorrentes leves.",
	})
	require.Equal(t, 201, res.Status, string(res.Body))
	assert.Equal(t, false, res.Map(t)["answer_is_correct"])
}

func TestAnswerScoping(t *testing.T) {
	e := setup(t)
	q := e.question(t, e.teacher, mcBody("Quanto é 2 + 2?"))
	qID := tests.ID(t, q, "question_id")
	opts := optionIDs(t, q)

	for _, tok := range []string{e.studA, e.studB} {
		res := tests.Do(t, e.app, "POST", "/api/answers", tok, map[string]any{"answer_question_id": qID, "answer_option_id": opts["B"]})
		require.Equal(t, 201, res.Status)
	}

	res := tests.Do(t, e.app, "GET", "/api/answers", e.studA, nil)
	require.Equal(t, 200, res.Status)
	rows := res.List(t)
	require.Len(t, rows, 1)
	assert.Equal(t, e.aID, rows[0]["answer_user_id"])

	res = tests.Do(t, e.app, "GET", "/api/answers?userId="+e.bID, e.studA, nil)
	assert.Equal(t, 403, res.Status)

	res = tests.Do(t, e.app, "GET", "/api/answers?user_id="+e.bID, e.admin, nil)
	require.Equal(t, 200, res.Status)
	assert.Len(t, res.List(t), 1)

	res = tests.Do(t, e.app, "GET", "/api/answers", e.admin, nil)
	require.Equal(t, 200, res.Status)
	assert.Len(t, res.List(t), 2)

	// B's answer is invisible to A by id too
	res = tests.Do(t, e.app, "GET", "/api/answers?question_id="+qID, e.studB, nil)
	bAnswer := tests.ID(t, res.List(t)[0], "answer_id")
	res = tests.Do(t, e.app, "GET", "/api/answers/"+bAnswer, e.studA, nil)
	assert.Equal(t, 403, res.Status)
}

func TestAttempts(t *testing.T) {
	e := setup(t)
	q := e.question(t, e.teacher, mcBody("Quanto é 2 + 2?"))
	qID := tests.ID(t, q, "question_id")
	opts := optionIDs(t, q)

	res := tests.Do(t, e.app, "POST", "/api/answers", e.studA, map[string]any{"answer_question_id": qID, "answer_option_id": opts["A"]})
	require.Equal(t, 201, res.Status)
	answerID := tests.ID(t, res.Map(t), "answer_id")

	res = tests.Do(t, e.app, "POST", "/api/answer-attempts", e.studA, map[string]any{
		"attempt_answer_id": uuid.NewString(),
		"attempt_option_id": opts["B"],
	})
	require.Equal(t, 404, res.Status)
	assert.Equal(t, service.MsgAnswerNotFound, res.Map(t)["message"])

	res = tests.Do(t, e.app, "POST", "/api/answer-attempts", e.studB, map[string]any{
		"attempt_answer_id": answerID,
		"attempt_option_id": opts["B"],
	})
	assert.Equal(t, 403, res.Status)

	res = tests.Do(t, e.app, "POST", "/api/answer-attempts", e.studA, map[string]any{
		"attempt_answer_id":      answerID,
		"attempt_option_id":      opts["B"],
		"attempt_time_spent_sec": 42,
	})
	require.Equal(t, 201, res.Status, string(res.Body))
	attempt := res.Map(t)
	assert.Equal(t, true, attempt["attempt_is_correct"])
	assert.Equal(t, e.aID, attempt["attempt_user_id"])

	res = tests.Do(t, e.app, "GET", "/api/answer-attempts?answer_id="+answerID, e.studA, nil)
	require.Equal(t, 200, res.Status)
	assert.Len(t, res.List(t), 1)

	res = tests.Do(t, e.app, "GET", "/api/answer-attempts", e.studB, nil)
	require.Equal(t, 200, res.Status)
	assert.Empty(t, res.List(t))

	// deleting the answer takes its attempts with it
	res = tests.Do(t, e.app, "DELETE", "/api/answers/"+answerID, e.studA, nil)
	require.Equal(t, 200, res.Status)
	res = tests.Do(t, e.app, "GET", "/api/answer-attempts/"+tests.ID(t, attempt, "attempt_id"), e.studA, nil)
	assert.Equal(t, 404, res.Status)
}

func TestFavoritesIdempotent(t *testing.T) {
	e := setup(t)
	q := e.question(t, e.teacher, mcBody("Quanto é 2 + 2?"))
	qID := tests.ID(t, q, "question_id")

	res := tests.Do(t, e.app, "POST", "/api/favorite-questions", e.studA, map[string]any{"favorite_question_id": qID})
	require.Equal(t, 201, res.Status, string(res.Body))
	favID := tests.ID(t, res.Map(t), "favorite_id")

	res = tests.Do(t, e.app, "POST", "/api/favorite-questions", e.studA, map[string]any{"favorite_question_id": qID})
	require.Equal(t, 200, res.Status)
	assert.Equal(t, favID, res.Map(t)["favorite_id"])

	res = tests.Do(t, e.app, "POST", "/api/favorite-questions", e.studA, map[string]any{
		"favorite_question_id": qID,
		"favorite_user_id":     e.bID,
	})
	assert.Equal(t, 403, res.Status)

	res = tests.Do(t, e.app, "POST", "/api/favorite-questions", e.studA, map[string]any{"favorite_question_id": uuid.NewString()})
	assert.Equal(t, 404, res.Status)

	res = tests.Do(t, e.app, "DELETE", "/api/favorite-questions/"+favID, e.studB, nil)
	assert.Equal(t, 403, res.Status)

	res = tests.Do(t, e.app, "DELETE", "/api/favorite-questions/"+favID, e.studA, nil)
	require.Equal(t, 200, res.Status)
	assert.Equal(t, service.MsgFavoriteDeleted, res.Map(t)["message"])

	res = tests.Do(t, e.app, "DELETE", "/api/favorite-questions/"+favID, e.studA, nil)
	assert.Equal(t, 404, res.Status)
}

func TestAdminAnswerForUnknownUser(t *testing.T) {
	e := setup(t)
	q := e.question(t, e.teacher, mcBody("Quanto é 2 + 2?"))

	res := tests.Do(t, e.app, "POST", "/api/answers", e.admin, map[string]any{
		"answer_question_id": tests.ID(t, q, "question_id"),
		"answer_option_id":   optionIDs(t, q)["B"],
		"answer_user_id":     uuid.NewString(),
	})
	require.Equal(t, 404, res.Status, string(res.Body))

	var n int64
	require.NoError(t, e.db.Table("answers").Count(&n).Error)
	assert.Zero(t, n)

	res = tests.Do(t, e.app, "POST", "/api/answers", e.admin, map[string]any{
		"answer_question_id": tests.ID(t, q, "question_id"),
		"answer_option_id":   optionIDs(t, q)["B"],
		"answer_user_id":     e.bID,
	})
	require.Equal(t, 201, res.Status, string(res.Body))
	assert.Equal(t, e.bID, res.Map(t)["answer_user_id"])
}

func TestReplacingOptionsRegradesAnswers(t *testing.T) {
	e := setup(t)
	q := e.question(t, e.teacher, mcBody("Quanto é 2 + 2?"))
	qID := tests.ID(t, q, "question_id")
	before := optionIDs(t, q)

	res := tests.Do(t, e.app, "POST", "/api/answers", e.studA, map[string]any{"answer_question_id": qID, "answer_option_id": before["B"]})
	require.Equal(t, 201, res.Status)
	answerA := res.Map(t)
	require.Equal(t, true, answerA["answer_is_correct"])
	res = tests.Do(t, e.app, "POST", "/api/answer-attempts", e.studA, map[string]any{
		"attempt_answer_id": tests.ID(t, answerA, "answer_id"),
		"attempt_option_id": before["B"],
	})
	require.Equal(t, 201, res.Status, string(res.Body))
	attemptID := tests.ID(t, res.Map(t), "attempt_id")

	res = tests.Do(t, e.app, "POST", "/api/answers", e.studB, map[string]any{"answer_question_id": qID, "answer_option_id": before["C"]})
	require.Equal(t, 201, res.Status)
	answerB := tests.ID(t, res.Map(t), "answer_id")

	// A becomes the right one, C goes away, D is new
	res = tests.Do(t, e.app, "PATCH", "/api/questions/"+qID, e.teacher, map[string]any{
		"options": []map[string]any{
			{"option_label": "A", "option_text": "4", "option_is_correct": true},
			{"option_label": "B", "option_text": "5"},
			{"option_label": "D", "option_text": "6"},
		},
	})
	require.Equal(t, 200, res.Status, string(res.Body))
	after := optionIDs(t, res.Map(t))
	assert.Equal(t, before["A"], after["A"])
	assert.Equal(t, before["B"], after["B"])
	assert.NotContains(t, after, "C")

	res = tests.Do(t, e.app, "GET", "/api/answers/"+tests.ID(t, answerA, "answer_id"), e.studA, nil)
	require.Equal(t, 200, res.Status)
	got := res.Map(t)
	assert.Equal(t, before["B"], got["answer_option_id"])
	assert.Equal(t, false, got["answer_is_correct"])

	res = tests.Do(t, e.app, "GET", "/api/answer-attempts/"+attemptID, e.studA, nil)
	require.Equal(t, 200, res.Status)
	assert.Equal(t, false, res.Map(t)["attempt_is_correct"])

	res = tests.Do(t, e.app, "GET", "/api/answers/"+answerB, e.studB, nil)
	require.Equal(t, 200, res.Status)
	got = res.Map(t)
	assert.Nil(t, got["answer_option_id"])
	assert.Equal(t, false, got["answer_is_correct"])

	var dangling int64
	require.NoError(t, e.db.Table("answers").
		Where("answer_option_id IS NOT NULL AND answer_option_id NOT IN (SELECT option_id FROM question_options)").
		Count(&dangling).Error)
	assert.Zero(t, dangling)

	// B can still re-answer against the new set
	res = tests.Do(t, e.app, "PATCH", "/api/answers/"+answerB, e.studB, map[string]any{"answer_option_id": after["A"]})
	require.Equal(t, 200, res.Status, string(res.Body))
	assert.Equal(t, true, res.Map(t)["answer_is_correct"])
}

func TestQuestionValidationListsEveryField(t *testing.T) {
	e := setup(t)

	res := tests.Do(t, e.app, "POST", "/api/questions", e.teacher, map[string]any{
		"question_type":       "MULTIPLE_CHOICE",
		"question_difficulty": "EASY",
		"options": []map[string]any{
			{"option_label": "A", "option_text": "x"},
			{"option_label": "B", "option_text": "y"},
		},
	})
	require.Equal(t, 400, res.Status)
	fields := map[string]bool{}
	for _, fe := range res.Map(t)["errors"].([]any) {
		fields[fe.(map[string]any)["field"].(string)] = true
	}
	assert.True(t, fields["question_statement"], fields)
	assert.True(t, fields["options"], fields)

	q := e.question(t, e.teacher, mcBody("Quanto é 2 + 2?"))
	res = tests.Do(t, e.app, "PATCH", "/api/questions/"+tests.ID(t, q, "question_id"), e.teacher, map[string]any{
		"question_difficulty": "IMPOSSIBLE",
		"question_type":       "TRUE_FALSE",
	})
	require.Equal(t, 400, res.Status)
	fields = map[string]bool{}
	for _, fe := range res.Map(t)["errors"].([]any) {
		fields[fe.(map[string]any)["field"].(string)] = true
	}
	assert.True(t, fields["question_difficulty"], fields)
	assert.True(t, fields["options"], fields)
}

func TestAttemptScopingAndDelete(t *testing.T) {
	e := setup(t)
	q := e.question(t, e.teacher, mcBody("Quanto é 2 + 2?"))
	opts := optionIDs(t, q)

	res := tests.Do(t, e.app, "POST", "/api/answers", e.studB, map[string]any{"answer_question_id": tests.ID(t, q, "question_id"), "answer_option_id": opts["A"]})
	require.Equal(t, 201, res.Status)
	res = tests.Do(t, e.app, "POST", "/api/answer-attempts", e.studB, map[string]any{
		"attempt_answer_id": tests.ID(t, res.Map(t), "answer_id"),
		"attempt_option_id": opts["B"],
	})
	require.Equal(t, 201, res.Status)
	attemptID := tests.ID(t, res.Map(t), "attempt_id")

	res = tests.Do(t, e.app, "GET", "/api/answer-attempts?userId="+e.bID, e.studA, nil)
	assert.Equal(t, 403, res.Status)
	res = tests.Do(t, e.app, "GET", "/api/answer-attempts?user_id="+e.bID, e.admin, nil)
	require.Equal(t, 200, res.Status)
	assert.Len(t, res.List(t), 1)

	res = tests.Do(t, e.app, "DELETE", "/api/answer-attempts/"+attemptID, e.studA, nil)
	assert.Equal(t, 403, res.Status)
	res = tests.Do(t, e.app, "DELETE", "/api/answer-attempts/"+attemptID, e.studB, nil)
	require.Equal(t, 200, res.Status)
	res = tests.Do(t, e.app, "DELETE", "/api/answer-attempts/"+attemptID, e.studB, nil)
	assert.Equal(t, 404, res.Status)
}
