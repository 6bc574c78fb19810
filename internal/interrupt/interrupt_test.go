package interrupt

import "testing"

func TestIRQSources(t *testing.T) {
	irq := New()

	irq.SetIRQ(IRQFrameCounter)
	if !irq.GetIRQ(IRQFrameCounter) {
		t.Fatal("frame counter IRQ not set")
	}
	if irq.GetIRQ(IRQDMC) {
		t.Fatal("DMC IRQ set spuriously")
	}

	irq.SetIRQ(IRQDMC)
	irq.ClearIRQ(IRQFrameCounter)
	if irq.GetIRQ(IRQFrameCounter) {
		t.Fatal("frame counter IRQ survived clear")
	}
	if !irq.GetIRQ(IRQDMC) {
		t.Fatal("clear hit the wrong source")
	}
}

func TestPendingHonorsMask(t *testing.T) {
	irq := New()
	irq.SetIRQ(IRQExternal)
	if !irq.Pending() {
		t.Fatal("unmasked IRQ not pending")
	}

	irq.IRQMask = IRQExternal
	if irq.Pending() {
		t.Fatal("masked IRQ still pending")
	}

	irq.SetIRQ(IRQFrameCounter)
	if !irq.Pending() {
		t.Fatal("other source should bypass the mask")
	}
}

func TestResetKeepsMask(t *testing.T) {
	irq := New()
	irq.IRQMask = IRQFdsDisk
	irq.NMI = true
	irq.RequestOAMDMA(0x02)
	irq.Reset()

	if irq.NMI || irq.OAMDMAPending {
		t.Fatal("reset left request state behind")
	}
	if irq.IRQMask != IRQFdsDisk {
		t.Fatal("reset cleared the mask")
	}
}
