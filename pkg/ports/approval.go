package ports

import "github.com/aretw0/interchange/pkg/domain"

// ApprovalChecker decides whether an executor holds an approval.
type ApprovalChecker interface {
	HasApproval(executor domain.Executor, approval domain.Approval) bool
}

// ApprovalFunc adapts a function to ApprovalChecker.
type ApprovalFunc func(executor domain.Executor, approval domain.Approval) bool

func (f ApprovalFunc) HasApproval(executor domain.Executor, approval domain.Approval) bool {
	return f(executor, approval)
}

// HolderApprovals asks executors implementing domain.ApprovalHolder.
// Other executors only pass when they are the console.
var HolderApprovals ApprovalChecker = ApprovalFunc(func(executor domain.Executor, approval domain.Approval) bool {
	if holder, ok := executor.(domain.ApprovalHolder); ok {
		return holder.HasApproval(approval)
	}
	return executor.Kind() == domain.KindConsole
})

// HasAll reports whether executor holds every approval.
func HasAll(checker ApprovalChecker, executor domain.Executor, approvals []domain.Approval) bool {
	for _, a := range approvals {
		if !checker.HasApproval(executor, a) {
			return false
		}
	}
	return true
}
