package controller_test

import (
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"quizcourse_backend/internals/constants"
	"quizcourse_backend/internals/features/courses/service"
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
}

func setup(t *testing.T) env {
	db := tests.OpenDB(t)
	a := tests.CreateUser(t, db, constants.RoleStudent)
	return env{
		db:      db,
		app:     tests.NewApp(db),
		admin:   tests.Token(t, tests.CreateUser(t, db, constants.RoleAdmin)),
		teacher: tests.Token(t, tests.CreateUser(t, db, constants.RoleTeacher)),
		studA:   tests.Token(t, a),
		studB:   tests.Token(t, tests.CreateUser(t, db, constants.RoleStudent)),
		aID:     a.ID.String(),
	}
}

func (e env) post(t *testing.T, token, path string, body map[string]any) map[string]any {
	t.Helper()
	res := tests.Do(t, e.app, "POST", path, token, body)
	require.Equal(t, 201, res.Status, string(res.Body))
	return res.Map(t)
}

func (e env) course(t *testing.T, title string) string {
	t.Helper()
	c := e.post(t, e.teacher, "/api/courses", map[string]any{"course_title": title, "course_level": "BEGINNER"})
	return tests.ID(t, c, "course_id")
}

func (e env) lesson(t *testing.T, courseID string) string {
	t.Helper()
	m := e.post(t, e.teacher, "/api/modules", map[string]any{"module_course_id": courseID, "module_title": "Fundamentos"})
	l := e.post(t, e.teacher, "/api/lessons", map[string]any{
		"lesson_module_id": tests.ID(t, m, "module_id"),
		"lesson_title":     "Primeira aula",
	})
	return tests.ID(t, l, "lesson_id")
}

func TestCourseCreateAndSlug(t *testing.T) {
	e := setup(t)

	first := e.post(t, e.teacher, "/api/courses", map[string]any{
		"course_title":       "Introdução ao Go",
		"course_level":       "BEGINNER",
		"course_description": "Do zero ao servidor HTTP.",
	})
	assert.Equal(t, "introducao-ao-go", first["course_slug"])
	assert.Equal(t, false, first["course_is_published"])

	second := e.post(t, e.admin, "/api/courses", map[string]any{"course_title": "Introdução ao GO", "course_level": "ADVANCED"})
	assert.Equal(t, "introducao-ao-go-2", second["course_slug"])

	res := tests.Do(t, e.app, "POST", "/api/courses", e.studA, map[string]any{"course_title": "Curso do aluno", "course_level": "BEGINNER"})
	assert.Equal(t, 403, res.Status)

	res = tests.Do(t, e.app, "POST", "/api/courses", e.teacher, map[string]any{
		"course_title":         "Sem tecnologia",
		"course_level":         "BEGINNER",
		"course_technology_id": uuid.NewString(),
	})
	assert.Equal(t, 404, res.Status)

	res = tests.Do(t, e.app, "GET", "/api/courses?level=ADVANCED", e.studA, nil)
	require.Equal(t, 200, res.Status)
	assert.Len(t, res.List(t), 1)
}

func TestCourseOwnership(t *testing.T) {
	e := setup(t)
	id := e.course(t, "Go Concorrente")
	other := tests.Token(t, tests.CreateUser(t, e.db, constants.RoleTeacher))

	res := tests.Do(t, e.app, "PATCH", "/api/courses/"+id, other, map[string]any{"course_title": "Roubado"})
	assert.Equal(t, 403, res.Status)

	res = tests.Do(t, e.app, "PATCH", "/api/courses/"+id, e.teacher, map[string]any{"course_is_published": true, "course_slug": "go-concorrencia"})
	require.Equal(t, 200, res.Status, string(res.Body))
	body := res.Map(t)
	assert.Equal(t, true, body["course_is_published"])
	assert.Equal(t, "go-concorrencia", body["course_slug"])

	res = tests.Do(t, e.app, "DELETE", "/api/courses/"+id, other, nil)
	assert.Equal(t, 403, res.Status)
}

func TestCourseThumbnail(t *testing.T) {
	e := setup(t)
	id := e.course(t, "Go com imagens")

	ct, body := tests.Multipart(t, "thumbnail", "capa.png", tests.PNG(t, 64, 32))
	res := tests.DoRaw(t, e.app, "PATCH", "/api/courses/"+id+"/thumbnail", e.teacher, ct, body)
	require.Equal(t, 200, res.Status, string(res.Body))
	url, _ := res.Map(t)["course_thumbnail_url"].(string)
	assert.True(t, strings.HasPrefix(url, "/uploads/thumbnails/"), url)
	assert.True(t, strings.HasSuffix(url, ".webp"), url)

	ct, body = tests.Multipart(t, "thumbnail", "capa.png", tests.PNG(t, 8, 8))
	res = tests.DoRaw(t, e.app, "PATCH", "/api/courses/"+id+"/thumbnail", e.studA, ct, body)
	assert.Equal(t, 403, res.Status)
}

func TestModulesAndLessons(t *testing.T) {
	e := setup(t)
	courseID := e.course(t, "Go Web")
	other := tests.Token(t, tests.CreateUser(t, e.db, constants.RoleTeacher))

	res := tests.Do(t, e.app, "POST", "/api/modules", other, map[string]any{"module_course_id": courseID, "module_title": "Intruso"})
	assert.Equal(t, 403, res.Status)

	m1 := e.post(t, e.teacher, "/api/modules", map[string]any{"module_course_id": courseID, "module_title": "Rotas"})
	m2 := e.post(t, e.teacher, "/api/modules", map[string]any{"module_course_id": courseID, "module_title": "Middlewares"})
	assert.EqualValues(t, 0, m1["module_order"])
	assert.EqualValues(t, 1, m2["module_order"])

	res = tests.Do(t, e.app, "GET", "/api/modules?course_id="+courseID, e.studA, nil)
	require.Equal(t, 200, res.Status)
	rows := res.List(t)
	require.Len(t, rows, 2)
	assert.Equal(t, "Rotas", rows[0]["module_title"])

	moduleID := tests.ID(t, m1, "module_id")
	lesson := e.post(t, e.teacher, "/api/lessons", map[string]any{
		"lesson_module_id":    moduleID,
		"lesson_title":        "Roteamento básico",
		"lesson_video_url":    "https://videos.example.com/1",
		"lesson_duration_min": 12,
		"lesson_resources": []map[string]any{
			{"title": "Documentação", "url": "https://pkg.go.dev/net/http"},
		},
	})
	resources := lesson["lesson_resources"].([]any)
	require.Len(t, resources, 1)
	assert.Equal(t, "Documentação", resources[0].(map[string]any)["title"])

	res = tests.Do(t, e.app, "POST", "/api/lessons", other, map[string]any{"lesson_module_id": moduleID, "lesson_title": "Intruso"})
	assert.Equal(t, 403, res.Status)

	res = tests.Do(t, e.app, "POST", "/api/lessons", e.teacher, map[string]any{"lesson_module_id": uuid.NewString(), "lesson_title": "Órfã"})
	assert.Equal(t, 404, res.Status)

	lessonID := tests.ID(t, lesson, "lesson_id")
	res = tests.Do(t, e.app, "PATCH", "/api/lessons/"+lessonID, e.teacher, map[string]any{"lesson_resources": []map[string]any{}})
	require.Equal(t, 200, res.Status, string(res.Body))
	assert.Empty(t, res.Map(t)["lesson_resources"])

	res = tests.Do(t, e.app, "DELETE", "/api/modules/"+moduleID, e.teacher, nil)
	require.Equal(t, 200, res.Status)
	assert.Equal(t, service.MsgModuleDeleted, res.Map(t)["message"])
	res = tests.Do(t, e.app, "GET", "/api/lessons/"+lessonID, e.teacher, nil)
	assert.Equal(t, 404, res.Status)
}

func TestEnrollments(t *testing.T) {
	e := setup(t)
	courseID := e.course(t, "Go Testes")

	enr := e.post(t, e.studA, "/api/enrollments", map[string]any{"enrollment_course_id": courseID})
	assert.Equal(t, "ACTIVE", enr["enrollment_status"])
	assert.Equal(t, e.aID, enr["enrollment_user_id"])

	res := tests.Do(t, e.app, "POST", "/api/enrollments", e.studA, map[string]any{"enrollment_course_id": courseID})
	require.Equal(t, 409, res.Status)
	assert.Equal(t, service.MsgEnrollmentDuplicate, res.Map(t)["message"])

	res = tests.Do(t, e.app, "POST", "/api/enrollments", e.studB, map[string]any{"enrollment_course_id": courseID, "enrollment_user_id": e.aID})
	assert.Equal(t, 403, res.Status)

	id := tests.ID(t, enr, "enrollment_id")
	res = tests.Do(t, e.app, "PATCH", "/api/enrollments/"+id, e.studA, map[string]any{"enrollment_status": "COMPLETED"})
	require.Equal(t, 200, res.Status, string(res.Body))
	body := res.Map(t)
	assert.Equal(t, "COMPLETED", body["enrollment_status"])
	assert.NotEmpty(t, body["enrollment_completed_at"])

	res = tests.Do(t, e.app, "PATCH", "/api/enrollments/"+id, e.studA, map[string]any{"enrollment_status": "ACTIVE"})
	require.Equal(t, 200, res.Status)
	assert.NotContains(t, res.Map(t), "enrollment_completed_at")

	res = tests.Do(t, e.app, "GET", "/api/enrollments", e.studB, nil)
	require.Equal(t, 200, res.Status)
	assert.Empty(t, res.List(t))

	res = tests.Do(t, e.app, "DELETE", "/api/enrollments/"+id, e.studA, nil)
	assert.Equal(t, 403, res.Status)
	res = tests.Do(t, e.app, "DELETE", "/api/enrollments/"+id, e.admin, nil)
	require.Equal(t, 200, res.Status)
	assert.Equal(t, service.MsgEnrollmentDeleted, res.Map(t)["message"])
}

func TestProgress(t *testing.T) {
	e := setup(t)
	lessonID := e.lesson(t, e.course(t, "Go Progresso"))

	p := e.post(t, e.studA, "/api/progress", map[string]any{"progress_lesson_id": lessonID, "progress_watched_sec": 30})
	assert.Equal(t, false, p["progress_is_completed"])

	res := tests.Do(t, e.app, "POST", "/api/progress", e.studA, map[string]any{"progress_lesson_id": lessonID})
	require.Equal(t, 409, res.Status)
	assert.Equal(t, service.MsgProgressDuplicate, res.Map(t)["message"])

	id := tests.ID(t, p, "progress_id")
	res = tests.Do(t, e.app, "PATCH", "/api/progress/"+id, e.studB, map[string]any{"progress_is_completed": true})
	assert.Equal(t, 403, res.Status)

	res = tests.Do(t, e.app, "PATCH", "/api/progress/"+id, e.studA, map[string]any{"progress_is_completed": true, "progress_watched_sec": 600})
	require.Equal(t, 200, res.Status, string(res.Body))
	body := res.Map(t)
	assert.Equal(t, true, body["progress_is_completed"])
	assert.NotEmpty(t, body["progress_completed_at"])
	assert.EqualValues(t, 600, body["progress_watched_sec"])

	res = tests.Do(t, e.app, "GET", "/api/progress?is_completed=true", e.studA, nil)
	require.Equal(t, 200, res.Status)
	assert.Len(t, res.List(t), 1)
}

func TestReviewsAndRating(t *testing.T) {
	e := setup(t)
	courseID := e.course(t, "Go Avaliado")

	res := tests.Do(t, e.app, "GET", "/api/courses/"+courseID+"/rating", e.studA, nil)
	require.Equal(t, 200, res.Status)
	assert.EqualValues(t, 0, res.Map(t)["count"])

	e.post(t, e.studA, "/api/reviews", map[string]any{"review_course_id": courseID, "review_rating": 4, "review_comment": "Bom curso."})
	e.post(t, e.studB, "/api/reviews", map[string]any{"review_course_id": courseID, "review_rating": 5})

	res = tests.Do(t, e.app, "POST", "/api/reviews", e.studA, map[string]any{"review_course_id": courseID, "review_rating": 3})
	require.Equal(t, 409, res.Status)
	assert.Equal(t, service.MsgReviewDuplicate, res.Map(t)["message"])

	res = tests.Do(t, e.app, "POST", "/api/reviews", e.studA, map[string]any{"review_course_id": courseID, "review_rating": 6})
	assert.Equal(t, 400, res.Status)

	res = tests.Do(t, e.app, "GET", "/api/courses/"+courseID+"/rating", e.studA, nil)
	require.Equal(t, 200, res.Status)
	rating := res.Map(t)
	assert.InDelta(t, 4.5, rating["average"], 0.001)
	assert.EqualValues(t, 2, rating["count"])

	res = tests.Do(t, e.app, "GET", "/api/reviews?course_id="+courseID+"&min_rating=5", e.studA, nil)
	require.Equal(t, 200, res.Status)
	assert.Len(t, res.List(t), 1)

	res = tests.Do(t, e.app, "GET", "/api/courses/"+uuid.NewString()+"/rating", e.studA, nil)
	assert.Equal(t, 404, res.Status)
}

func TestCourseDeleteCascades(t *testing.T) {
	e := setup(t)
	courseID := e.course(t, "Go Temporário")
	lessonID := e.lesson(t, courseID)
	e.post(t, e.studA, "/api/enrollments", map[string]any{"enrollment_course_id": courseID})
	e.post(t, e.studA, "/api/progress", map[string]any{"progress_lesson_id": lessonID})

	res := tests.Do(t, e.app, "DELETE", "/api/courses/"+courseID, e.teacher, nil)
	require.Equal(t, 200, res.Status, string(res.Body))
	assert.Equal(t, service.MsgCourseDeleted, res.Map(t)["message"])

	for _, table := range []string{"modules", "lessons", "enrollments", "progress"} {
		var n int64
		require.NoError(t, e.db.Table(table).Count(&n).Error)
		assert.Zero(t, n, table)
	}

	res = tests.Do(t, e.app, "DELETE", "/api/courses/"+courseID, e.teacher, nil)
	assert.Equal(t, 404, res.Status)
}

func TestRepeatedDeleteIsNotFound(t *testing.T) {
	e := setup(t)
	courseID := e.course(t, "Go Descartável")
	m := e.post(t, e.teacher, "/api/modules", map[string]any{"module_course_id": courseID, "module_title": "Único"})
	moduleID := tests.ID(t, m, "module_id")
	l := e.post(t, e.teacher, "/api/lessons", map[string]any{"lesson_module_id": moduleID, "lesson_title": "Única aula"})
	lessonID := tests.ID(t, l, "lesson_id")
	p := e.post(t, e.studA, "/api/progress", map[string]any{"progress_lesson_id": lessonID})
	r := e.post(t, e.studA, "/api/reviews", map[string]any{"review_course_id": courseID, "review_rating": 3})
	en := e.post(t, e.studA, "/api/enrollments", map[string]any{"enrollment_course_id": courseID})

	cases := []struct {
		path  string
		token string
		msg   string
	}{
		{"/api/progress/" + tests.ID(t, p, "progress_id"), e.studA, service.MsgProgressDeleted},
		{"/api/reviews/" + tests.ID(t, r, "review_id"), e.studA, service.MsgReviewDeleted},
		{"/api/enrollments/" + tests.ID(t, en, "enrollment_id"), e.admin, service.MsgEnrollmentDeleted},
		{"/api/lessons/" + lessonID, e.teacher, service.MsgLessonDeleted},
		{"/api/modules/" + moduleID, e.teacher, service.MsgModuleDeleted},
	}
	for _, tc := range cases {
		res := tests.Do(t, e.app, "DELETE", tc.path, tc.token, nil)
		require.Equal(t, 200, res.Status, tc.path+" "+string(res.Body))
		assert.Equal(t, tc.msg, res.Map(t)["message"], tc.path)

		res = tests.Do(t, e.app, "DELETE", tc.path, tc.token, nil)
		assert.Equal(t, 404, res.Status, tc.path)
	}
}

func TestAdminEnrollsUnknownUser(t *testing.T) {
	e := setup(t)
	courseID := e.course(t, "Go Matrículas")

	res := tests.Do(t, e.app, "POST", "/api/enrollments", e.admin, map[string]any{
		"enrollment_course_id": courseID,
		"enrollment_user_id":   uuid.NewString(),
	})
	assert.Equal(t, 404, res.Status, string(res.Body))

	res = tests.Do(t, e.app, "POST", "/api/reviews", e.admin, map[string]any{
		"review_course_id": courseID,
		"review_rating":    5,
		"review_user_id":   uuid.NewString(),
	})
	assert.Equal(t, 404, res.Status, string(res.Body))

	enr := e.post(t, e.admin, "/api/enrollments", map[string]any{"enrollment_course_id": courseID, "enrollment_user_id": e.aID})
	assert.Equal(t, e.aID, enr["enrollment_user_id"])
}
