package ir

import "fmt"

// stackCapacity is the fixed capacity of the materialized stack buffer,
// allocated as a [stackCapacity x i32] array in Lower's entry block; this
// compiler never grows the buffer.
const stackCapacity = 1024

// emitPush inlines "load size; store v at buffer[size]; store size+1".
func (b *builder) emitPush(value string) {
	sz := b.newTemp()
	b.line("  %s = load i32, i32* %%size", sz)
	slot := b.newTemp()
	b.line("  %s = getelementptr inbounds [%d x i32], [%d x i32]* %%stack, i32 0, i32 %s",
		slot, stackCapacity, stackCapacity, sz)
	b.line("  store i32 %s, i32* %s", value, slot)
	sz2 := b.newTemp()
	b.line("  %s = add i32 %s, 1", sz2, sz)
	b.line("  store i32 %s, i32* %%size", sz2)
}

// emitPop inlines "load size; compute size-1; store back; load
// buffer[size-1]" and returns the SSA name holding the popped value.
// Popping an empty stack is undefined in the emitted code — this compiler
// elides the underflow guard, exactly as the language's reference
// implementation does.
func (b *builder) emitPop() string {
	sz := b.newTemp()
	b.line("  %s = load i32, i32* %%size", sz)
	sz2 := b.newTemp()
	b.line("  %s = sub i32 %s, 1", sz2, sz)
	b.line("  store i32 %s, i32* %%size", sz2)
	slot := b.newTemp()
	b.line("  %s = getelementptr inbounds [%d x i32], [%d x i32]* %%stack, i32 0, i32 %s",
		slot, stackCapacity, stackCapacity, sz2)
	v := b.newTemp()
	b.line("  %s = load i32, i32* %s", v, slot)
	return v
}

// emitRoll inlines the four-step roll normalization algorithm over the
// already-popped rolls/depth operands. It mutates %stack's backing storage
// in place via two counted loops (copy-out, then write-back), using
// alloca'd loop counters rather than phi nodes — the same load/store-driven
// loop shape a naive -O0 frontend emits for a local variable, and simpler
// to hand-generate correctly than SSA phi placement.
func (b *builder) emitRoll(rolls, depth string) {
	id := b.newRollID()
	skip := fmt.Sprintf("roll%d.skip", id)

	b.comment("roll: depth <= 0 check")
	dle0 := b.newTemp()
	b.line("  %s = icmp sle i32 %s, 0", dle0, depth)
	check2 := fmt.Sprintf("roll%d.check2", id)
	b.line("  br i1 %s, label %%%s, label %%%s", dle0, skip, check2)

	b.line("%s:", check2)
	sz := b.newTemp()
	b.line("  %s = load i32, i32* %%size", sz)
	dgtsz := b.newTemp()
	b.line("  %s = icmp sgt i32 %s, %s", dgtsz, depth, sz)
	norm := fmt.Sprintf("roll%d.norm", id)
	b.line("  br i1 %s, label %%%s, label %%%s", dgtsz, skip, norm)

	b.line("%s:", norm)
	m1 := b.newTemp()
	b.line("  %s = srem i32 %s, %s", m1, rolls, depth)
	m2 := b.newTemp()
	b.line("  %s = add i32 %s, %s", m2, m1, depth)
	r := b.newTemp()
	b.line("  %s = srem i32 %s, %s", r, m2, depth)
	req0 := b.newTemp()
	b.line("  %s = icmp eq i32 %s, 0", req0, r)
	cp := fmt.Sprintf("roll%d.copy", id)
	b.line("  br i1 %s, label %%%s, label %%%s", req0, skip, cp)

	b.line("%s:", cp)
	start := b.newTemp()
	b.line("  %s = sub i32 %s, %s", start, sz, depth)
	buf := b.newTemp()
	b.line("  %s = alloca i32, i32 %s", buf, depth)
	icpPtr := b.newTemp()
	b.line("  %s = alloca i32", icpPtr)
	b.line("  store i32 0, i32* %s", icpPtr)
	copyLoop := fmt.Sprintf("roll%d.copyloop", id)
	b.line("  br label %%%s", copyLoop)

	copyBody := fmt.Sprintf("roll%d.copybody", id)
	writeInit := fmt.Sprintf("roll%d.writeinit", id)
	b.line("%s:", copyLoop)
	icp := b.newTemp()
	b.line("  %s = load i32, i32* %s", icp, icpPtr)
	icpDone := b.newTemp()
	b.line("  %s = icmp sge i32 %s, %s", icpDone, icp, depth)
	b.line("  br i1 %s, label %%%s, label %%%s", icpDone, writeInit, copyBody)

	b.line("%s:", copyBody)
	srcIdx := b.newTemp()
	b.line("  %s = add i32 %s, %s", srcIdx, start, icp)
	srcSlot := b.newTemp()
	b.line("  %s = getelementptr inbounds [%d x i32], [%d x i32]* %%stack, i32 0, i32 %s",
		srcSlot, stackCapacity, stackCapacity, srcIdx)
	val := b.newTemp()
	b.line("  %s = load i32, i32* %s", val, srcSlot)
	dstSlot := b.newTemp()
	b.line("  %s = getelementptr inbounds i32, i32* %s, i32 %s", dstSlot, buf, icp)
	b.line("  store i32 %s, i32* %s", val, dstSlot)
	icpNext := b.newTemp()
	b.line("  %s = add i32 %s, 1", icpNext, icp)
	b.line("  store i32 %s, i32* %s", icpNext, icpPtr)
	b.line("  br label %%%s", copyLoop)

	writeLoop := fmt.Sprintf("roll%d.writeloop", id)
	writeBody := fmt.Sprintf("roll%d.writebody", id)
	b.line("%s:", writeInit)
	iwrPtr := b.newTemp()
	b.line("  %s = alloca i32", iwrPtr)
	b.line("  store i32 0, i32* %s", iwrPtr)
	b.line("  br label %%%s", writeLoop)

	b.line("%s:", writeLoop)
	iwr := b.newTemp()
	b.line("  %s = load i32, i32* %s", iwr, iwrPtr)
	iwrDone := b.newTemp()
	b.line("  %s = icmp sge i32 %s, %s", iwrDone, iwr, depth)
	b.line("  br i1 %s, label %%%s, label %%%s", iwrDone, skip, writeBody)

	b.line("%s:", writeBody)
	srcSlot2 := b.newTemp()
	b.line("  %s = getelementptr inbounds i32, i32* %s, i32 %s", srcSlot2, buf, iwr)
	val2 := b.newTemp()
	b.line("  %s = load i32, i32* %s", val2, srcSlot2)
	sum := b.newTemp()
	b.line("  %s = add i32 %s, %s", sum, iwr, r)
	mod := b.newTemp()
	b.line("  %s = srem i32 %s, %s", mod, sum, depth)
	dstIdx := b.newTemp()
	b.line("  %s = add i32 %s, %s", dstIdx, start, mod)
	dstSlot2 := b.newTemp()
	b.line("  %s = getelementptr inbounds [%d x i32], [%d x i32]* %%stack, i32 0, i32 %s",
		dstSlot2, stackCapacity, stackCapacity, dstIdx)
	b.line("  store i32 %s, i32* %s", val2, dstSlot2)
	iwrNext := b.newTemp()
	b.line("  %s = add i32 %s, 1", iwrNext, iwr)
	b.line("  store i32 %s, i32* %s", iwrNext, iwrPtr)
	b.line("  br label %%%s", writeLoop)

	b.line("%s:", skip)
}
