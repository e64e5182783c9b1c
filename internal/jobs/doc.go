// Package jobs implements the shell's job control: a fixed-capacity table of
// child processes and the machinery that keeps it consistent with
// kernel-reported process state.
//
// A Job is one user-launched child process, running as the leader of its own
// process group so that terminal-generated signals can be aimed at a whole
// job instead of at the shell. A Control owns the table and mediates between
// the synchronous command loop (launch, fg/bg, listing) and the asynchronous
// SIGCHLD/SIGINT/SIGTSTP dispatcher.
package jobs
