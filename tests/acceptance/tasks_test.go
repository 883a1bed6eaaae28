//go:build acceptance

package acceptance

import (
	"net/http"

	"github.com/prperemyshlev/task-manager/internal/dto"
)

func (s *Suite) createTask(token, title string, completed bool) dto.TaskResponse {
	var task dto.TaskResponse
	status := s.do(http.MethodPost, "/api/v1/tasks", token, dto.CreateTaskRequest{
		Title:     title,
		Completed: completed,
	}, &task)
	s.Require().Equal(http.StatusCreated, status)
	return task
}

func (s *Suite) TestTasks_RequireAuthentication() {
	status := s.do(http.MethodGet, "/api/v1/tasks", "", nil, nil)
	s.Equal(http.StatusUnauthorized, status)
}

func (s *Suite) TestTasks_Lifecycle() {
	token := s.signUp("alice")

	task := s.createTask(token, "write report", false)
	s.NotEmpty(task.ID)
	s.False(task.Completed)

	var got dto.TaskResponse
	status := s.do(http.MethodGet, "/api/v1/tasks/"+task.ID, token, nil, &got)
	s.Equal(http.StatusOK, status)
	s.Equal("write report", got.Title)

	var updated dto.UpdateTaskResponse
	status = s.do(http.MethodPut, "/api/v1/tasks/"+task.ID, token, dto.UpdateTaskRequest{
		Title: "write report", Completed: true,
	}, &updated)
	s.Equal(http.StatusOK, status)
	s.True(updated.Updated)
	s.True(updated.Task.Completed)

	// same content again matches without modifying
	status = s.do(http.MethodPut, "/api/v1/tasks/"+task.ID, token, dto.UpdateTaskRequest{
		Title: "write report", Completed: true,
	}, &updated)
	s.Equal(http.StatusOK, status)
	s.False(updated.Updated)

	status = s.do(http.MethodDelete, "/api/v1/tasks/"+task.ID, token, nil, nil)
	s.Equal(http.StatusNoContent, status)

	status = s.do(http.MethodGet, "/api/v1/tasks/"+task.ID, token, nil, nil)
	s.Equal(http.StatusNotFound, status)
}

func (s *Suite) TestTasks_ListFilter() {
	token := s.signUp("alice")

	s.createTask(token, "open", false)
	s.createTask(token, "done", true)

	var all, completed, open []dto.TaskResponse
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/tasks", token, nil, &all))
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/tasks?completed=true", token, nil, &completed))
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/tasks?completed=false", token, nil, &open))

	s.Len(all, 2)
	s.Require().Len(completed, 1)
	s.Equal("done", completed[0].Title)
	s.Require().Len(open, 1)
	s.Equal("open", open[0].Title)
}

func (s *Suite) TestTasks_OtherOwnersAreInvisible() {
	alice := s.signUp("alice")
	bob := s.signUp("bob")

	task := s.createTask(alice, "private", false)

	var list []dto.TaskResponse
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/tasks", bob, nil, &list))
	s.Empty(list)

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/v1/tasks/"+task.ID, bob, nil, nil))
	s.Equal(http.StatusNotFound, s.do(http.MethodPut, "/api/v1/tasks/"+task.ID, bob,
		dto.UpdateTaskRequest{Title: "hijacked"}, nil))
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, "/api/v1/tasks/"+task.ID, bob, nil, nil))

	// the owner still sees it unchanged
	var got dto.TaskResponse
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/tasks/"+task.ID, alice, nil, &got))
	s.Equal("private", got.Title)

	// malformed ids behave like missing ones
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/v1/tasks/not-a-uuid", alice, nil, nil))
}
