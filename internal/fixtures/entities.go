package fixtures

import "github.com/horilla-hris/hris-bulk-go/internal/domain/bulk"

func cols(pairs ...string) []bulk.Column {
	out := make([]bulk.Column, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, bulk.Column{Name: pairs[i], Header: pairs[i+1]})
	}
	return out
}

// DefaultEntities are the HRMS list views that expose bulk actions.
func DefaultEntities() []bulk.Entity {
	return []bulk.Entity{
		{
			Module: "attendance", Name: "attendance", Label: "Attendances",
			Table:         "attendance_attendance",
			FilterColumns: []string{"employee_id_id", "attendance_date", "shift_id_id", "attendance_validated"},
			ActiveColumn:  "is_active",
			ExportColumns: cols(
				"id", "ID",
				"employee_id_id", "Employee",
				"attendance_date", "Date",
				"attendance_clock_in", "Check-In",
				"attendance_clock_out", "Check-Out",
				"attendance_worked_hour", "Worked Hours",
			),
		},
		{
			Module: "leave", Name: "holiday", Label: "Holidays",
			Table:         "leave_holiday",
			FilterColumns: []string{"recurring", "company_id_id"},
			ActiveColumn:  "is_active",
			ExportColumns: cols(
				"id", "ID",
				"name", "Holiday Name",
				"start_date", "Start Date",
				"end_date", "End Date",
				"recurring", "Recurring",
			),
		},
		{
			Module: "leave", Name: "request", Label: "Leave Requests",
			Table:          "leave_leaverequest",
			FilterColumns:  []string{"employee_id_id", "leave_type_id_id", "status"},
			StatusColumn:   "status",
			PendingStatus:  "requested",
			ApprovedStatus: "approved",
			RejectedStatus: "rejected",
			ActiveColumn:   "is_active",
			ExportColumns: cols(
				"id", "ID",
				"employee_id_id", "Employee",
				"leave_type_id_id", "Leave Type",
				"start_date", "Start Date",
				"end_date", "End Date",
				"requested_days", "Requested Days",
				"status", "Status",
			),
		},
		{
			Module: "payroll", Name: "contract", Label: "Contracts",
			Table:         "payroll_contract",
			FilterColumns: []string{"employee_id_id", "contract_status", "pay_frequency"},
			ActiveColumn:  "is_active",
			ExportColumns: cols(
				"id", "ID",
				"contract_name", "Contract",
				"employee_id_id", "Employee",
				"contract_start_date", "Start Date",
				"contract_end_date", "End Date",
				"wage", "Wage",
				"contract_status", "Status",
			),
		},
		{
			Module: "recruitment", Name: "candidate", Label: "Candidates",
			Table:         "recruitment_candidate",
			FilterColumns: []string{"recruitment_id_id", "stage_id_id", "hired", "canceled"},
			ActiveColumn:  "is_active",
			ExportColumns: cols(
				"id", "ID",
				"name", "Name",
				"email", "Email",
				"mobile", "Phone",
				"recruitment_id_id", "Recruitment",
				"stage_id_id", "Stage",
			),
		},
		{
			Module: "onboarding", Name: "candidate-task", Label: "Onboarding Tasks",
			Table:         "onboarding_candidatetask",
			FilterColumns: []string{"candidate_id_id", "onboarding_task_id_id", "status"},
			ExportColumns: cols(
				"id", "ID",
				"candidate_id_id", "Candidate",
				"onboarding_task_id_id", "Task",
				"status", "Status",
			),
		},
		{
			Module: "pms", Name: "objective", Label: "Objectives",
			Table:          "pms_employeeobjective",
			FilterColumns:  []string{"employee_id_id", "status", "archive"},
			StatusColumn:   "status",
			PendingStatus:  "Not Started",
			ApprovedStatus: "On Track",
			RejectedStatus: "Closed",
			ActiveColumn:   "is_active",
			ExportColumns: cols(
				"id", "ID",
				"objective", "Objective",
				"employee_id_id", "Employee",
				"start_date", "Start Date",
				"end_date", "End Date",
				"status", "Status",
			),
		},
		{
			Module: "project", Name: "project", Label: "Projects",
			Table:         "project_project",
			FilterColumns: []string{"status", "is_active"},
			ActiveColumn:  "is_active",
			ExportColumns: cols(
				"id", "ID",
				"title", "Title",
				"status", "Status",
				"start_date", "Start Date",
				"end_date", "End Date",
			),
		},
		{
			Module: "asset", Name: "asset-request", Label: "Asset Requests",
			Table:          "asset_assetrequest",
			FilterColumns:  []string{"requested_employee_id_id", "asset_category_id_id", "asset_request_status"},
			StatusColumn:   "asset_request_status",
			PendingStatus:  "Requested",
			ApprovedStatus: "Approved",
			RejectedStatus: "Rejected",
			ExportColumns: cols(
				"id", "ID",
				"requested_employee_id_id", "Requested By",
				"asset_category_id_id", "Category",
				"asset_request_date", "Request Date",
				"asset_request_status", "Status",
			),
		},
		{
			Module: "biometric", Name: "device", Label: "Biometric Devices",
			Table:         "biometric_biometricdevices",
			FilterColumns: []string{"machine_type", "is_live", "is_scheduler"},
			ActiveColumn:  "is_active",
			ExportColumns: cols(
				"id", "ID",
				"name", "Name",
				"machine_ip", "IP Address",
				"port", "Port",
				"machine_type", "Machine Type",
			),
		},
	}
}

// DefaultRegistry builds the registry of DefaultEntities.
func DefaultRegistry() (*bulk.Registry, error) {
	return bulk.NewRegistry(DefaultEntities()...)
}
