package services

// Services defined in this package:
// - AuthService: credential verification, JWT issuing and plan gating
// - ProvisioningService: guardian account and link sync on student writes
// - StudentService: student CRUD on top of provisioning
// - TeacherService: staff CRUD with expense history
// - FinanceService: tuition, expenses, ledger and monthly closings
// - DashboardService: dashboard, monthly report and defaulter queries
// - FeedbackService: pedagogical reports with guardian access control
